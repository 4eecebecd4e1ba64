// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// JSON-bearing columns (addresses, invoice line items) are stored as text and
// decoded through the helpers in codec.go. A column that fails to decode does
// not fail the read: ToDomain resets the field to its zero value and reports
// the problem as a FieldError for the repository to log.
package models
