// Package http implements the JSON API of the vault backend.
//
// Routes:
//
//	GET  /api/version
//	GET  /vault/totp                  TOTP status
//	POST /vault/totp                  {action, token}
//	GET|POST|PUT|DELETE /vault          secret records
//	GET|POST|PUT|DELETE /vault/projects projects
//
// Every /vault route requires the configured API token. Record routes also
// require a TOTP grant in the X-Vault-TOTP-Grant header while TOTP is enabled.
package http
