package workflow

import (
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/store"
)

// Invitations lists the projects that invited the session user.
func (e *Engine) Invitations(s *Session) (items []MailboxItem, err error) {
	defer e.observe(ActInvitations, &err)
	if err = e.authorize(s, ActInvitations); err != nil {
		return nil, err
	}
	me, err := e.self(s)
	if err != nil {
		return nil, err
	}
	return e.mailboxItems(mailbox(me, MailboxInvitations)), nil
}

// RespondInvitation resolves invitation i. Accepting joins the project and
// notifies its lead. Membership is append-only, accepting a second invitation
// to the same project adds the member twice.
func (e *Engine) RespondInvitation(s *Session, i int, accept bool) (err error) {
	defer e.observe(ActRespondInvitation, &err)
	if err = e.authorize(s, ActRespondInvitation); err != nil {
		return err
	}
	me, err := e.self(s)
	if err != nil {
		return err
	}
	id, err := peekMail(me, MailboxInvitations, i)
	if err != nil {
		return err
	}

	p, rec, perr := e.project(id)
	if _, err = popMail(me, MailboxInvitations, i); err != nil {
		return err
	}
	if !accept {
		log.Infof("project %s: invitation declined by %s", id, s.ID())
		return nil
	}
	if perr != nil {
		return perr
	}

	pushMail(me, MailboxProjects, id)
	pushMail(rec, fieldMembers, s.ID())
	e.notify(p, NoticeInvitationAccepted, s.ID())
	log.Infof("project %s: %s joined", id, s.ID())
	return nil
}

// JoinedProjects returns the projects the session user is a member of.
// Deleted projects are left out.
func (e *Engine) JoinedProjects(s *Session) (infos []ProjectInfo, err error) {
	defer e.observe(ActJoinedProjects, &err)
	if err = e.authorize(s, ActJoinedProjects); err != nil {
		return nil, err
	}
	return e.ownProjects(s)
}

// ownProjects resolves the projs mailbox of the session user
func (e *Engine) ownProjects(s *Session) ([]ProjectInfo, error) {
	me, err := e.self(s)
	if err != nil {
		return nil, err
	}
	var infos []ProjectInfo
	for _, v := range mailbox(me, MailboxProjects) {
		id, _ := v.(string)
		if rec, ok := e.projectRecord(id); ok {
			infos = append(infos, e.info(projectFromRecord(id, rec)))
		}
	}
	return infos, nil
}

// Become switches between Member and Lead. Joined or led projects and
// pending invitations are discarded.
func (e *Engine) Become(s *Session, role identity.Role) (err error) {
	var action Action
	switch role {
	case identity.Lead:
		action = ActBecomeLead
	case identity.Member:
		action = ActBecomeMember
	default:
		return store.Validationf("cannot become %s", role)
	}

	defer e.observe(action, &err)
	if err = e.authorize(s, action); err != nil {
		return err
	}
	me, err := e.self(s)
	if err != nil {
		return err
	}

	me[MailboxProjects] = []any{}
	me[MailboxInvitations] = []any{}
	if err = identity.SetRole(e.logins, s.Login.Username, role); err != nil {
		return err
	}
	s.Login.Role = role
	return nil
}
