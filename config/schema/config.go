package schema

// Minter is an account allowed to call the privileged mint path. Managed by
// operators directly in the config database.
type Minter struct {
	Address     string `gorm:"primarykey"`
	Available   bool   `gorm:"index:idx1"` // true means effective
	Description string
}

type IpRateWhitelist struct {
	OriginOrIP  string `gorm:"primarykey"` // e.g "188.0.2.2"
	Available   bool   `gorm:"index:idx2"` // true means effective
	Description string
}

type Param struct {
	ID         int64 `gorm:"primarykey"`
	ServeLimit int   // requests per minute per origin+ip; 0 disables the limiter
}
