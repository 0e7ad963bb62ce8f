package workflow

import (
	"strings"

	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/store"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("workflow")

// Engine runs the project workflow on top of a Database. It holds no state of
// its own, everything lives in the tables. An Engine is not safe for
// concurrent use.
type Engine struct {
	people    *db.Table
	logins    *db.Table
	projects  *db.Table
	documents *db.Table
	newID     func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the project id generator. Generated ids that are
// already taken are drawn again.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// Session is an authenticated user. The role is re-read from the login table
// on every action, so role changes take effect immediately.
type Session struct {
	Login identity.Login
}

// ID returns the person id of the session user.
func (s *Session) ID() string {
	return s.Login.ID
}

// NewEngine creates an engine on d. All tables of Namespaces must exist.
func NewEngine(d *db.Database, opts ...Option) (*Engine, error) {
	tables := make([]*db.Table, len(Namespaces))
	for i, name := range Namespaces {
		t, ok := d.Table(name)
		if !ok {
			return nil, store.Lookupf("database has no %q table", name)
		}
		tables[i] = t
	}

	e := &Engine{
		people:    tables[0],
		logins:    tables[1],
		projects:  tables[2],
		documents: tables[3],
		newID:     newProjectID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// newProjectID returns 32 random hex characters
func newProjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// --------------------------------------------------------------------------
// Authentication and authorization
// --------------------------------------------------------------------------

// Login authenticates a user and opens a session.
func (e *Engine) Login(username, password string) (*Session, error) {
	l, err := identity.Authenticate(e.logins, username, password)
	if err != nil {
		return nil, err
	}
	return &Session{Login: l}, nil
}

// Can reports whether the session user may currently perform action.
func (e *Engine) Can(s *Session, action Action) bool {
	return e.authorize(s, action) == nil
}

// authorize refreshes the session's login and checks its role
func (e *Engine) authorize(s *Session, action Action) error {
	if s == nil {
		return store.Authf("not logged in")
	}
	l, err := identity.Get(e.logins, s.Login.Username)
	if err != nil || l.ID != s.Login.ID {
		return store.Authf("session of %q is no longer valid", s.Login.Username)
	}
	s.Login = l
	if !Can(l.Role, action) {
		return store.Validationf("a %s cannot %s", l.Role, action)
	}
	return nil
}

// observe counts the outcome of an action
func (e *Engine) observe(action Action, err *error) {
	ok := *err == nil
	common.CountAction(string(action), ok)
	if !ok {
		log.Debugf("%s rejected: %v", action, *err)
	}
}

// --------------------------------------------------------------------------
// Lookups
// --------------------------------------------------------------------------

// NameOf returns "First Last" of a person or "Unknown".
func (e *Engine) NameOf(personID string) string {
	rec, ok := e.personRecord(personID)
	if !ok {
		return "Unknown"
	}
	return personFromRecord(personID, rec).Name()
}

// ProjectName returns the name of a project or "[DELETED PROJECT]".
func (e *Engine) ProjectName(projectID string) string {
	rec, ok := e.projectRecord(projectID)
	if !ok {
		return "[DELETED PROJECT]"
	}
	return rec.Str(fieldName)
}

// Person returns the person with the given id or username.
func (e *Engine) Person(ref string) (Person, error) {
	id, rec, err := e.findPerson(ref)
	if err != nil {
		return Person{}, err
	}
	return personFromRecord(id, rec), nil
}

func (e *Engine) personRecord(id string) (db.Record, bool) {
	v, ok := e.people.Get(id)
	if !ok {
		return nil, false
	}
	rec, ok := v.(db.Record)
	return rec, ok
}

func (e *Engine) projectRecord(id string) (db.Record, bool) {
	v, ok := e.projects.Get(id)
	if !ok {
		return nil, false
	}
	rec, ok := v.(db.Record)
	return rec, ok
}

// self returns the person record of the session user
func (e *Engine) self(s *Session) (db.Record, error) {
	rec, ok := e.personRecord(s.ID())
	if !ok {
		return nil, store.Lookupf("no person record for %q", s.ID())
	}
	return rec, nil
}

// findPerson resolves a person id or a username
func (e *Engine) findPerson(ref string) (string, db.Record, error) {
	if rec, ok := e.personRecord(ref); ok {
		return ref, rec, nil
	}
	if l, err := identity.Get(e.logins, ref); err == nil {
		if rec, ok := e.personRecord(l.ID); ok {
			return l.ID, rec, nil
		}
	}
	return "", nil, store.Lookupf("no person with id or username %q", ref)
}

// findPersonWithRole resolves ref and checks the role of its login
func (e *Engine) findPersonWithRole(ref string, roles ...identity.Role) (string, db.Record, error) {
	id, rec, err := e.findPerson(ref)
	if err != nil {
		return "", nil, err
	}
	l, err := identity.FindByID(e.logins, id)
	if err != nil {
		return "", nil, err
	}
	for _, r := range roles {
		if l.Role == r {
			return id, rec, nil
		}
	}
	return "", nil, store.Validationf("%s is a %s", personFromRecord(id, rec).Name(), l.Role)
}

func (e *Engine) project(id string) (Project, db.Record, error) {
	rec, ok := e.projectRecord(id)
	if !ok {
		return Project{}, nil, store.Lookupf("no project %q", id)
	}
	return projectFromRecord(id, rec), rec, nil
}

// evaluationList returns the evaluation queue, which may be missing
func (e *Engine) evaluationList() []any {
	list, _ := e.documents.GetOr(EvaluationListKey, nil).([]any)
	return list
}

// mailboxItems renders a project id mailbox
func (e *Engine) mailboxItems(list []any) []MailboxItem {
	items := make([]MailboxItem, 0, len(list))
	for i, v := range list {
		id, _ := v.(string)
		item := MailboxItem{Index: i, ProjectID: id}
		if rec, ok := e.projectRecord(id); ok {
			p := projectFromRecord(id, rec)
			item.ProjectName = p.Name
			item.Lead = e.NameOf(p.Lead())
		} else {
			item.Deleted = true
		}
		items = append(items, item)
	}
	return items
}

// notify appends a notice to the message mailbox of the project lead
func (e *Engine) notify(p Project, noticeType, author string) {
	lead, ok := e.personRecord(p.Lead())
	if !ok {
		log.Warningf("cannot notify lead %q of project %s: no person record", p.Lead(), p.ID)
		return
	}
	pushMail(lead, MailboxMessages, Message{Type: noticeType, Author: author, Project: p.ID}.Record())
}

// --------------------------------------------------------------------------
// Shared actions
// --------------------------------------------------------------------------

// ProjectInfo returns a project with its state and resolved names.
func (e *Engine) ProjectInfo(s *Session, id string) (info ProjectInfo, err error) {
	defer e.observe(ActProjectInfo, &err)
	if err = e.authorize(s, ActProjectInfo); err != nil {
		return
	}
	p, _, err := e.project(id)
	if err != nil {
		return
	}
	return e.info(p), nil
}

func (e *Engine) info(p Project) ProjectInfo {
	info := ProjectInfo{
		Project:  p,
		State:    e.state(p),
		LeadName: e.NameOf(p.Lead()),
	}
	switch {
	case p.HasAdvisor():
		info.AdvisorName = e.NameOf(p.Advisor)
	case p.Advisor == PendingAdvisor:
		info.AdvisorName = PendingAdvisor
	}
	for _, m := range p.JoinedMembers() {
		info.MemberNames = append(info.MemberNames, e.NameOf(m))
	}
	return info
}

// State returns the derived lifecycle state of a project.
func (e *Engine) State(s *Session, id string) (State, error) {
	info, err := e.ProjectInfo(s, id)
	if err != nil {
		return NoAdvisor, err
	}
	return info.State, nil
}
