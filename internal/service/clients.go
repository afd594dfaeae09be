package service

import (
	"context"
	"sort"
	"strings"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

func trimClient(info models.ClientInfo) models.ClientInfo {
	return models.ClientInfo{
		Name:       strings.TrimSpace(info.Name),
		Email:      strings.TrimSpace(info.Email),
		Address:    strings.TrimSpace(info.Address),
		PostalCode: strings.TrimSpace(info.PostalCode),
		City:       strings.TrimSpace(info.City),
		Siret:      strings.TrimSpace(info.Siret),
	}
}

// SaveClient stores a client. A client whose name matches an existing one, ignoring
// case, replaces its details; created reports whether a new client was added.
func (s *FacturierService) SaveClient(ctx context.Context, info models.ClientInfo) (client *models.Client, created bool, err error) {
	info = trimClient(info)
	if info.Name == "" {
		return nil, false, &ValidationError{Field: "name", Message: "client name is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findClientByName(info.Name)
	if existing != nil {
		existing.ClientInfo = info
		client = existing
	} else {
		client = &models.Client{ID: models.NewUUID(), ClientInfo: info}
		s.state.Clients = append(s.state.Clients, client)
		created = true
	}

	s.log.Debug().Str("id", client.ID).Bool("created", created).Msg("client saved")
	out := *client
	return &out, created, s.persist(ctx, "save client")
}

// DeleteClient removes a client. Documents keep their own copy of its details.
func (s *FacturierService) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.state.Clients {
		if c.ID == id {
			s.state.Clients = append(s.state.Clients[:i], s.state.Clients[i+1:]...)
			return s.persist(ctx, "delete client")
		}
	}
	return ErrClientNotFound
}

func (s *FacturierService) ListClients(ctx context.Context) []*models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Client, 0, len(s.state.Clients))
	for _, c := range s.state.Clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (s *FacturierService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.state.Clients {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrClientNotFound
}

func (s *FacturierService) FindClientByName(ctx context.Context, name string) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c := s.findClientByName(strings.TrimSpace(name)); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, ErrClientNotFound
}

func (s *FacturierService) findClientByName(name string) *models.Client {
	for _, c := range s.state.Clients {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}
