// Package authgate resolves a request's caller identity and role.
//
// The module owns admin accounts and issues signed tokens for both
// admins and voters. Admin secrets are stored as bcrypt hashes; voter
// credentials live in the voter registry and are compared as issued.
// Every other module receives a verified Identity and never touches
// token material itself.
package authgate
