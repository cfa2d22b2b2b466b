package contextkeys

// Custom key type to avoid context collisions.
type contextKey string

// DBContextKey stores the *gorm.DB (pool or transaction) in context.
const DBContextKey = contextKey("db")
