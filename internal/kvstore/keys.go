package kvstore

// Keys persisted by the agent. Values are plain strings.
const (
	KeyUser                  = "@timely:user"
	KeyToken                 = "@timely:token"
	KeyLanguage              = "@timely:language"
	KeyWorkSettings          = "@timely:workSettings"
	KeyLastProcessedDeeplink = "@timely:lastProcessedDeeplink"
	KeyWorkplaceRadius       = "@timely:workplaceRadius"
	KeyLocationPermission    = "@timely:locationPermission"
	KeyGeofencePermission    = "@timely:geofencePermission"
	KeyEntitlements          = "@timely:entitlements"
)
