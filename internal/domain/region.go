package domain

// Region is an API deployment the account was created in. The mobile app
// pins the same gateway per region.
type Region struct {
	Name    string
	APIHost string
}

var regions = []Region{
	{Name: "United States", APIHost: "https://mobile.deneb.lucidmotors.com"},
	{Name: "Saudi Arabia", APIHost: "https://mobile.deneb.sa.lucidmotors.com"},
	{Name: "Europe", APIHost: "https://mobile.deneb.eu.lucidmotors.com"},
}

// DefaultRegion is assumed for accounts configured before regions existed.
var DefaultRegion = regions[0]

// Regions returns all known regions in presentation order.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// RegionByName resolves a region from its display name.
func RegionByName(name string) (Region, error) {
	for _, r := range regions {
		if r.Name == name {
			return r, nil
		}
	}
	return Region{}, ErrUnknownRegion
}
