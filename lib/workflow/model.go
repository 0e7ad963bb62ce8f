package workflow

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/pmkv/lib/db"
)

// --------------------------------------------------------------------------
// Person
// --------------------------------------------------------------------------

// Person is the read-only view of a person record. Mailboxes and any fields
// unknown to the engine stay in the record.
type Person struct {
	ID    string
	First string
	Last  string
	Type  string // roster classification: student, faculty or admin
}

// Name returns first and last name.
func (p Person) Name() string {
	return strings.TrimSpace(p.First + " " + p.Last)
}

func personFromRecord(id string, rec db.Record) Person {
	return Person{
		ID:    id,
		First: rec.Str(fieldFirst),
		Last:  rec.Str(fieldLast),
		Type:  rec.Str(fieldType),
	}
}

// --------------------------------------------------------------------------
// Project
// --------------------------------------------------------------------------

// Project is the read-only view of a project record.
type Project struct {
	ID        string
	Name      string
	Desc      string
	Members   []string // Members[0] is the lead
	Advisor   string   // person id, PendingAdvisor or empty
	Approved  bool
	Evaluated bool
	Report    string // empty until submitted
}

// Lead returns the id of the project lead.
func (p Project) Lead() string {
	if len(p.Members) == 0 {
		return ""
	}
	return p.Members[0]
}

// JoinedMembers returns the members without the lead.
func (p Project) JoinedMembers() []string {
	if len(p.Members) < 2 {
		return nil
	}
	return p.Members[1:]
}

// HasAdvisor reports whether a person has accepted to advise the project.
func (p Project) HasAdvisor() bool {
	return p.Advisor != "" && p.Advisor != PendingAdvisor
}

// Record converts the project into its stored form. Absent advisor and
// report are left out.
func (p Project) Record() db.Record {
	rec := db.Record{
		fieldID:        p.ID,
		fieldName:      p.Name,
		fieldDesc:      p.Desc,
		fieldMembers:   db.StringList(p.Members),
		fieldApproved:  p.Approved,
		fieldEvaluated: p.Evaluated,
	}
	if p.Advisor != "" {
		rec[fieldAdvisor] = p.Advisor
	}
	if p.Report != "" {
		rec[fieldReport] = p.Report
	}
	return rec
}

func projectFromRecord(id string, rec db.Record) Project {
	return Project{
		ID:        id,
		Name:      rec.Str(fieldName),
		Desc:      rec.Str(fieldDesc),
		Members:   rec.Strings(fieldMembers),
		Advisor:   rec.Str(fieldAdvisor),
		Approved:  rec.Bool(fieldApproved),
		Evaluated: rec.Bool(fieldEvaluated),
		Report:    rec.Str(fieldReport),
	}
}

// --------------------------------------------------------------------------
// Message
// --------------------------------------------------------------------------

// Message is an entry of the msgs mailbox. A notice has Type, Author and
// Project set, a free-form message Title, Content and Sender.
type Message struct {
	Type    string
	Author  string
	Project string

	Title   string
	Content string
	Sender  string
}

// Resolver renders ids for display.
type Resolver interface {
	NameOf(personID string) string
	ProjectName(projectID string) string
}

// IsNotice reports whether m was generated by a workflow transition.
func (m Message) IsNotice() bool {
	return m.Type != ""
}

// Record converts the message into its stored form.
func (m Message) Record() db.Record {
	if m.IsNotice() {
		return db.Record{fieldMsgType: m.Type, fieldMsgAuthor: m.Author, fieldMsgProject: m.Project}
	}
	return db.Record{fieldMsgTitle: m.Title, fieldMsgContent: m.Content, fieldMsgSender: m.Sender}
}

// Headline renders a one line summary of the message.
func (m Message) Headline(r Resolver) string {
	if !m.IsNotice() {
		return fmt.Sprintf("%s (from %s)", m.Title, r.NameOf(m.Sender))
	}

	author := r.NameOf(m.Author)
	project := fmt.Sprintf("%s (%s)", r.ProjectName(m.Project), m.Project)
	switch m.Type {
	case NoticeInvitationAccepted:
		return fmt.Sprintf("%s has accepted your project %s invitation.", author, project)
	case NoticeAdvisorAccepted:
		return fmt.Sprintf("%s has agreed to be your project %s advisor.", author, project)
	case NoticeAdvisorRejected:
		return fmt.Sprintf("%s has rejected to be your project %s advisor.", author, project)
	case NoticeApprovalGranted:
		return fmt.Sprintf("%s has approved your project %s.", author, project)
	case NoticeApprovalRejected:
		return fmt.Sprintf("%s has rejected your project %s approval request.", author, project)
	case NoticeEvaluatedPositive:
		return fmt.Sprintf("%s has evaluated your project %s positively.", author, project)
	case NoticeEvaluatedNegative:
		return fmt.Sprintf("%s has evaluated your project %s negatively.", author, project)
	default:
		return fmt.Sprintf("%s notice from %s about project %s", m.Type, author, project)
	}
}

func messageFromValue(v any) Message {
	rec, _ := v.(db.Record)
	return Message{
		Type:    rec.Str(fieldMsgType),
		Author:  rec.Str(fieldMsgAuthor),
		Project: rec.Str(fieldMsgProject),
		Title:   rec.Str(fieldMsgTitle),
		Content: rec.Str(fieldMsgContent),
		Sender:  rec.Str(fieldMsgSender),
	}
}

// --------------------------------------------------------------------------
// Listings
// --------------------------------------------------------------------------

// MailboxItem is one entry of a project id mailbox as shown to its owner.
type MailboxItem struct {
	Index       int
	ProjectID   string
	ProjectName string
	Lead        string // display name of the project lead
	Deleted     bool   // the project no longer exists
}

func (i MailboxItem) String() string {
	if i.Deleted {
		return fmt.Sprintf("%d. [DELETED PROJECT]", i.Index)
	}
	return fmt.Sprintf("%d. %s (%s) by %s", i.Index, i.ProjectName, i.ProjectID, i.Lead)
}

// ProjectInfo is a project with its derived state and resolved names.
type ProjectInfo struct {
	Project
	State       State
	LeadName    string
	AdvisorName string // empty without advisor, "pending" while requested
	MemberNames []string
}
