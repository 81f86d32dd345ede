package service

import (
	"context"
	"regexp"
	"time"

	"github.com/solodesk/solodesk/internal/dao"
	"github.com/solodesk/solodesk/internal/model"
)

// ContractService renders contract documents and drives the status
// transitions the stale-contract reminder source depends on.
type ContractService struct {
	contracts dao.ContractDao
	clients   dao.ClientDao
	projects  dao.ProjectDao
}

func NewContractService(contracts dao.ContractDao, clients dao.ClientDao, projects dao.ProjectDao) *ContractService {
	return &ContractService{contracts: contracts, clients: clients, projects: projects}
}

var tokenPattern = regexp.MustCompile(`\{\{\s*([a-z_]+)\s*\}\}`)

// Render substitutes {{token}} placeholders in the contract body from the
// linked client/project. Unknown tokens are left as-is so a typo is visible
// in the rendered document instead of silently vanishing.
func (s *ContractService) Render(ctx context.Context, teamID, id int64) (string, error) {
	c, err := s.contracts.Get(ctx, teamID, id)
	if err != nil {
		return "", err
	}
	values := map[string]string{
		"contract_title": c.Title,
		"date":           model.DateOnly(time.Now()),
	}
	if client, err := s.clients.Get(ctx, teamID, c.ClientID); err == nil {
		values["client_name"] = client.Name
		values["client_company"] = client.Company
		values["client_email"] = client.Email
	}
	if c.ProjectID != nil {
		if project, err := s.projects.Get(ctx, teamID, *c.ProjectID); err == nil {
			values["project_name"] = project.Name
		}
	}
	return Substitute(c.Body, values), nil
}

// Substitute replaces {{token}} occurrences from the value map.
func Substitute(body string, values map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(body, func(m string) string {
		key := tokenPattern.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}

// MarkSent stamps the send time that the staleness check measures from.
func (s *ContractService) MarkSent(ctx context.Context, teamID, id int64) error {
	return s.contracts.Update(ctx, teamID, id, map[string]any{
		"status":  model.ContractSent,
		"sent_at": time.Now(),
	})
}

func (s *ContractService) MarkSigned(ctx context.Context, teamID, id int64) error {
	return s.contracts.Update(ctx, teamID, id, map[string]any{
		"status":    model.ContractSigned,
		"signed_at": time.Now(),
	})
}
