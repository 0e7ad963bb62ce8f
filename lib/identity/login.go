package identity

import (
	"strings"
	"unicode/utf8"

	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("identity")

// Field names of a login record
const (
	FieldID       = "id"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"
)

// Login is the typed view of a record in the login table.
type Login struct {
	ID       string // ID of the person this login belongs to
	Username string
	Password string // salt‖hash, never the plain password
	Role     Role
}

// Record converts the login into its stored form. The role is stored as integer.
func (l Login) Record() db.Record {
	return db.Record{
		FieldID:       l.ID,
		FieldUsername: l.Username,
		FieldPassword: l.Password,
		FieldRole:     int64(l.Role),
	}
}

// LoginFromRecord reads a login from its stored form.
func LoginFromRecord(v any) (Login, error) {
	rec, ok := v.(db.Record)
	if !ok {
		return Login{}, store.Validationf("login entry is %T, not a record", v)
	}
	role, ok := rec[FieldRole].(int64)
	if !ok || !Role(role).Valid() {
		return Login{}, store.Validationf("login %q has an invalid role %v", rec.Str(FieldUsername), rec[FieldRole])
	}
	return Login{
		ID:       rec.Str(FieldID),
		Username: rec.Str(FieldUsername),
		Password: rec.Str(FieldPassword),
		Role:     Role(role),
	}, nil
}

// Username derives the login name of a person: the first name, a dot and
// the first letter of the last name, all lower case.
func Username(first, last string) (string, error) {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" || last == "" {
		return "", store.Validationf("cannot derive a username from %q %q", first, last)
	}
	initial, _ := utf8.DecodeRuneInString(last)
	return strings.ToLower(first + "." + string(initial)), nil
}

// --------------------------------------------------------------------------
// Lookups
// --------------------------------------------------------------------------

// Authenticate looks up username and verifies password. Unknown users and
// wrong passwords produce the same AuthFailure.
func Authenticate(logins *db.Table, username, password string) (Login, error) {
	l, err := Get(logins, username)
	if err == nil && Verify(l.Password, password) {
		common.CountLogin(true)
		log.Debugf("login %s succeeded", username)
		return l, nil
	}
	common.CountLogin(false)
	log.Infof("failed login attempt for %q", username)
	return Login{}, store.Authf("invalid credentials")
}

// Get returns the login stored under username.
func Get(logins *db.Table, username string) (Login, error) {
	v, ok := logins.Get(username)
	if !ok {
		return Login{}, store.Lookupf("no login %q", username)
	}
	return LoginFromRecord(v)
}

// FindByID returns the login of the person with the given ID.
func FindByID(logins *db.Table, id string) (Login, error) {
	for _, v := range logins.All() {
		rec, ok := v.(db.Record)
		if ok && rec.Str(FieldID) == id {
			return LoginFromRecord(rec)
		}
	}
	return Login{}, store.Lookupf("no login for person %q", id)
}

// SetRole changes the role of the login stored under username. The role is
// the only field of a login that changes after bootstrap.
func SetRole(logins *db.Table, username string, role Role) error {
	if !role.Valid() {
		return store.Validationf("invalid role %d", role)
	}
	v, ok := logins.Get(username)
	if !ok {
		return store.Lookupf("no login %q", username)
	}
	rec, ok := v.(db.Record)
	if !ok {
		return store.Validationf("login entry is %T, not a record", v)
	}
	rec[FieldRole] = int64(role)
	log.Infof("role of %s changed to %s", username, role)
	return nil
}
