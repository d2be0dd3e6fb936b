package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
	"github.com/docukit/approval-system/internal/core/state"
)

// IdentityService implements login and logout over the state container.
//
// There is no hashing, lockout or rate limiting: credentials are compared
// exactly as stored. A failed login is reported as a plain OK=false with no
// distinction between unknown user and wrong password.
type IdentityService struct {
	container *state.Container
	analytics ports.AnalyticsService
	log       zerolog.Logger
}

func NewIdentityService(container *state.Container, analytics ports.AnalyticsService, log zerolog.Logger) *IdentityService {
	return &IdentityService{container: container, analytics: analytics, log: log}
}

func (s *IdentityService) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	cred, ok := s.container.Snapshot().FindCredential(username, password)
	if !ok {
		return ports.LoginResult{OK: false}, nil
	}

	if err := s.container.Dispatch(ctx, state.Login{UserID: cred.ID}); err != nil {
		s.log.Warn().Err(err).Msg("session not persisted")
	}

	s.record(ctx, cred)
	s.log.Info().Str("username", cred.Username).Str("role", string(cred.Role)).Msg("login")

	return ports.LoginResult{OK: true, Role: cred.Role, LinkedID: cred.LinkedID}, nil
}

func (s *IdentityService) Logout(ctx context.Context) error {
	if err := s.container.Dispatch(ctx, state.Logout{}); err != nil {
		s.log.Warn().Err(err).Msg("session not persisted")
	}
	return nil
}

func (s *IdentityService) CurrentUser() (domain.Credential, bool) {
	return s.container.Snapshot().CurrentCredential()
}

// Credentials returns every credential, ordered by username for a stable
// reporting view.
func (s *IdentityService) Credentials() []domain.Credential {
	snap := s.container.Snapshot()
	out := make([]domain.Credential, 0, len(snap.Credentials))
	for _, c := range snap.Credentials {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// record appends a login_success event. Failures are logged, never surfaced.
func (s *IdentityService) record(ctx context.Context, cred domain.Credential) {
	in := ports.EventInput{Type: domain.EventLoginSuccess, ActorRole: cred.Role, ActorID: cred.ID}
	switch cred.Role {
	case domain.RoleCompany:
		in.CompanyID = cred.LinkedID
	case domain.RoleApplicant:
		in.ApplicantID = cred.LinkedID
	}
	if err := s.analytics.Record(ctx, in); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login event")
	}
}
