package identity

import (
	"errors"
	"io"
	"strconv"

	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/store"
)

// Field names read from the roster and the login feed
const (
	RosterFirst = "first"
	RosterLast  = "last"
	RosterType  = "type"

	FeedID       = "ID"
	FeedUsername = "username"
	FeedPassword = "password"
	FeedRole     = "role"
)

// Credential is a plain text login handed out to a person after bootstrap.
type Credential struct {
	ID       string
	Username string
	Password string
}

// Bootstrap fills the empty login table.
//
// If feed is not nil, one login is created per feed row, keyed by the row's
// username and using its plain password and role label. Otherwise one login
// is derived per person in people, with a generated password that is
// returned as Credential. Stored passwords are always salted hashes.
//
// An unknown role label aborts the bootstrap with ErrUnknownRoleLabel.
func Bootstrap(people, logins *db.Table, feed db.RowSource) ([]Credential, error) {
	if logins.Len() > 0 {
		return nil, store.Validationf("login table already holds %d entries", logins.Len())
	}

	var creds []Credential
	var err error
	if feed != nil {
		err = bootstrapFromFeed(logins, feed)
	} else {
		creds, err = bootstrapFromRoster(people, logins)
	}
	if err != nil {
		return nil, err
	}

	log.Infof("bootstrapped %d logins (%d generated passwords)", logins.Len(), len(creds))
	return creds, nil
}

func bootstrapFromFeed(logins *db.Table, feed db.RowSource) error {
	for n := 1; ; n++ {
		row, err := feed.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return store.Validationf("login feed row %d: %w", n, err)
		}

		fields := make(map[string]string, 4)
		for _, f := range []string{FeedID, FeedUsername, FeedPassword, FeedRole} {
			v, ok := row[f]
			if !ok {
				return store.Lookupf("login feed row %d: missing field %q", n, f)
			}
			fields[f] = v
		}

		role, err := RoleForLabel(fields[FeedRole])
		if err != nil {
			return err
		}
		salt, err := NewSalt()
		if err != nil {
			return err
		}

		username := fields[FeedUsername]
		if logins.Has(username) {
			log.Warningf("login feed row %d overwrites login %q", n, username)
		}
		l := Login{
			ID:       fields[FeedID],
			Username: username,
			Password: HashPassword(fields[FeedPassword], salt),
			Role:     role,
		}
		if err := logins.Put(username, l.Record()); err != nil {
			return err
		}
	}
}

func bootstrapFromRoster(people, logins *db.Table) ([]Credential, error) {
	var creds []Credential
	for id, v := range people.All() {
		rec, ok := v.(db.Record)
		if !ok {
			return nil, store.Validationf("person %q is %T, not a record", id, v)
		}
		for _, f := range []string{RosterFirst, RosterLast, RosterType} {
			if _, ok := rec[f]; !ok {
				return nil, store.Lookupf("person %q: missing field %q", id, f)
			}
		}

		role, err := RoleForLabel(rec.Str(RosterType))
		if err != nil {
			return nil, err
		}
		base, err := Username(rec.Str(RosterFirst), rec.Str(RosterLast))
		if err != nil {
			return nil, err
		}

		// two people can share first name and last initial
		username := base
		for i := 2; logins.Has(username); i++ {
			username = base + strconv.Itoa(i)
		}
		if username != base {
			log.Warningf("username %q is taken, using %q for person %q", base, username, id)
		}

		password, err := GeneratePassword(GeneratedPasswordLength)
		if err != nil {
			return nil, err
		}
		salt, err := NewSalt()
		if err != nil {
			return nil, err
		}

		l := Login{ID: id, Username: username, Password: HashPassword(password, salt), Role: role}
		if err := logins.Put(username, l.Record()); err != nil {
			return nil, err
		}
		creds = append(creds, Credential{ID: id, Username: username, Password: password})
	}
	return creds, nil
}
