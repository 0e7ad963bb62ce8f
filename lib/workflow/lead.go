package workflow

import (
	"strings"

	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/store"
)

// ownedProject loads a project the session user leads
func (e *Engine) ownedProject(s *Session, id string) (Project, db.Record, error) {
	p, rec, err := e.project(id)
	if err != nil {
		return Project{}, nil, err
	}
	if p.Lead() != s.ID() {
		return Project{}, nil, store.Validationf("you are not the lead of project %s", id)
	}
	return p, rec, nil
}

// requireState rejects out-of-order transitions
func (e *Engine) requireState(p Project, want State) error {
	if got := e.state(p); got != want {
		return store.Validationf("project %s is %s, expected %s", p.ID, got, want)
	}
	return nil
}

// CreateProject creates a project led by the session user.
func (e *Engine) CreateProject(s *Session, name, desc string) (p Project, err error) {
	defer e.observe(ActCreateProject, &err)
	if err = e.authorize(s, ActCreateProject); err != nil {
		return Project{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Project{}, store.Validationf("project name must not be empty")
	}
	me, err := e.self(s)
	if err != nil {
		return Project{}, err
	}

	id := e.newID()
	for e.projects.Has(id) {
		id = e.newID()
	}
	p = Project{ID: id, Name: name, Desc: desc, Members: []string{s.ID()}}
	if err = e.projects.Put(id, p.Record()); err != nil {
		return Project{}, err
	}
	pushMail(me, MailboxProjects, id)

	log.Infof("project %s: created by %s", id, s.ID())
	return p, nil
}

// Projects returns the projects led by the session user.
func (e *Engine) Projects(s *Session) (infos []ProjectInfo, err error) {
	defer e.observe(ActProjects, &err)
	if err = e.authorize(s, ActProjects); err != nil {
		return nil, err
	}
	return e.ownProjects(s)
}

// RenameProject changes the name of a project.
func (e *Engine) RenameProject(s *Session, id, name string) (err error) {
	defer e.observe(ActRenameProject, &err)
	if err = e.authorize(s, ActRenameProject); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return store.Validationf("project name must not be empty")
	}
	_, rec, err := e.ownedProject(s, id)
	if err != nil {
		return err
	}
	rec[fieldName] = name
	return nil
}

// DescribeProject changes the description of a project.
func (e *Engine) DescribeProject(s *Session, id, desc string) (err error) {
	defer e.observe(ActDescribeProject, &err)
	if err = e.authorize(s, ActDescribeProject); err != nil {
		return err
	}
	_, rec, err := e.ownedProject(s, id)
	if err != nil {
		return err
	}
	rec[fieldDesc] = desc
	return nil
}

// DeleteProject removes a project. Mailbox entries elsewhere that refer to
// it become stale and are dropped when their owners resolve them.
func (e *Engine) DeleteProject(s *Session, id string) (err error) {
	defer e.observe(ActDeleteProject, &err)
	if err = e.authorize(s, ActDeleteProject); err != nil {
		return err
	}
	if _, _, err = e.ownedProject(s, id); err != nil {
		return err
	}
	if err = e.projects.Delete(id); err != nil {
		return store.Classify(err)
	}
	if me, ok := e.personRecord(s.ID()); ok {
		removeValue(me, MailboxProjects, id)
	}
	log.Infof("project %s: deleted by %s", id, s.ID())
	return nil
}

// InviteMember puts the project into the invitations of a Member, given by
// person id or username.
func (e *Engine) InviteMember(s *Session, id, member string) (err error) {
	defer e.observe(ActInviteMember, &err)
	if err = e.authorize(s, ActInviteMember); err != nil {
		return err
	}
	if _, _, err = e.ownedProject(s, id); err != nil {
		return err
	}
	memberID, rec, err := e.findPersonWithRole(member, identity.Member)
	if err != nil {
		return err
	}
	pushMail(rec, MailboxInvitations, id)
	log.Infof("project %s: %s invited %s", id, s.ID(), memberID)
	return nil
}

// RequestAdvisor asks a faculty member, given by person id or username, to
// advise the project. Only one request can be outstanding.
func (e *Engine) RequestAdvisor(s *Session, id, faculty string) (err error) {
	defer e.observe(ActRequestAdvisor, &err)
	if err = e.authorize(s, ActRequestAdvisor); err != nil {
		return err
	}
	p, rec, err := e.ownedProject(s, id)
	if err != nil {
		return err
	}
	if err = e.requireState(p, NoAdvisor); err != nil {
		return err
	}
	facultyID, frec, err := e.findPersonWithRole(faculty, identity.Faculty, identity.Advisor)
	if err != nil {
		return err
	}

	rec[fieldAdvisor] = PendingAdvisor
	pushMail(frec, MailboxAdvisorRequests, id)
	log.Infof("project %s: advisor requested from %s", id, facultyID)
	return nil
}

// SubmitForApproval sends the project to its advisor for approval.
func (e *Engine) SubmitForApproval(s *Session, id string) (err error) {
	defer e.observe(ActSubmitApproval, &err)
	if err = e.authorize(s, ActSubmitApproval); err != nil {
		return err
	}
	p, _, err := e.ownedProject(s, id)
	if err != nil {
		return err
	}
	if err = e.requireState(p, AdvisorAssigned); err != nil {
		return err
	}
	adv, ok := e.personRecord(p.Advisor)
	if !ok {
		return store.Lookupf("advisor %q of project %s does not exist", p.Advisor, id)
	}

	pushMail(adv, MailboxApprovalRequests, id)
	log.Infof("project %s: submitted for approval to %s", id, p.Advisor)
	return nil
}

// SubmitForEvaluation puts an approved project into the evaluation list.
func (e *Engine) SubmitForEvaluation(s *Session, id string) (err error) {
	defer e.observe(ActSubmitEvaluation, &err)
	if err = e.authorize(s, ActSubmitEvaluation); err != nil {
		return err
	}
	p, _, err := e.ownedProject(s, id)
	if err != nil {
		return err
	}
	if err = e.requireState(p, Approved); err != nil {
		return err
	}

	if err = e.documents.Put(EvaluationListKey, append(e.evaluationList(), id)); err != nil {
		return err
	}
	log.Infof("project %s: submitted for evaluation", id)
	return nil
}

// SubmitReport attaches the final report to an evaluated project.
func (e *Engine) SubmitReport(s *Session, id, report string) (err error) {
	defer e.observe(ActSubmitReport, &err)
	if err = e.authorize(s, ActSubmitReport); err != nil {
		return err
	}
	if strings.TrimSpace(report) == "" {
		return store.Validationf("report must not be empty")
	}
	p, rec, err := e.ownedProject(s, id)
	if err != nil {
		return err
	}
	if err = e.requireState(p, Evaluated); err != nil {
		return err
	}
	if p.Report != "" {
		return store.Validationf("project %s already has a report", id)
	}

	rec[fieldReport] = report
	log.Infof("project %s: report submitted", id)
	return nil
}
