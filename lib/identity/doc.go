// Package identity derives login records from a person roster and verifies
// credentials.
//
// A login is stored in the login table under its username with the fields
// id, username, password and role. The password field holds a four character
// printable ASCII salt followed by the hex encoded SHA-256 of the plain
// password concatenated with the salt. Roles are stored as integers
// (Member=0, Lead=1, Faculty=2, Advisor=3, Admin=4).
//
// Bootstrap runs once, when no prior state exists. Authentication failures
// never reveal whether the username or the password was wrong and there is
// no throttling of attempts.
package identity
