// Package testutil contains helper builders and collaborator doubles used
// across tests to reduce boilerplate when constructing query contexts and
// pipeline collaborators. Mocks are built on testify; the Fixed* and
// Recording* doubles are safe for concurrent use. They are not intended for
// production usage.
package testutil
