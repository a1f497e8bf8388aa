// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx stdlib driver through database/sql.
// Database constraints (the case-insensitive unique email index, the
// todo check constraints, the owner foreign key) are the source of
// truth; pre-checks in the service layer only improve error messages.
package postgres
