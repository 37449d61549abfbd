package triggerlog

import "gorm.io/gorm"

// column returns a scope matching column = value, or a no-op when value is
// empty.
func column(name, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(name+" = ?", value)
	}
}

// Scope narrows a query to the rows filter selects.
func Scope(filter ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = column("user_id", filter.UserID)(db)
		db = column("source", filter.Source)(db)
		return column("outcome", filter.Outcome)(db)
	}
}
