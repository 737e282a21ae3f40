package value

// Platform is a resale marketplace name.
type Platform string

const (
	PlatformEbay     Platform = "ebay"
	PlatformFacebook Platform = "facebook"
	PlatformMercari  Platform = "mercari"
	PlatformLocal    Platform = "local"
)

func (p Platform) String() string {
	return string(p)
}
