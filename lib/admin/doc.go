// Package admin implements the raw access shell of administrators: a cursor
// over the Database with ls, cd, home, get, set and delete on JSON values.
package admin
