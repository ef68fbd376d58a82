// Package naming implements the case transforms used when turning API
// schema, field, endpoint and category names into identifiers.
//
// Spaces are the only separator the transforms recognize. Capital letters
// mark word boundaries only in ProperCaseToSnakeCase.
package naming
