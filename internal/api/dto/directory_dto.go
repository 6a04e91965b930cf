package dto

import (
	"github.com/queueshq/queues-service/internal/domain"
	"github.com/queueshq/queues-service/internal/service"
)

// OrganizationRequest creates or updates an organization.
type OrganizationRequest struct {
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	ManagerID *int64  `json:"manager_id,omitempty"`
}

// ToDomain maps the request onto a domain organization.
func (r OrganizationRequest) ToDomain(id int64) *domain.Organization {
	return &domain.Organization{
		ID:        id,
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		ManagerID: r.ManagerID,
	}
}

// OrganizationResponse is the wire shape of an organization.
type OrganizationResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	ManagerID *int64  `json:"manager_id,omitempty"`
}

// NewOrganizationListResponse maps organizations.
func NewOrganizationListResponse(orgs []domain.Organization) []OrganizationResponse {
	result := make([]OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		result = append(result, OrganizationResponse{
			ID:        o.ID,
			Name:      o.Name,
			Address:   o.Address,
			Phone:     o.Phone,
			ManagerID: o.ManagerID,
		})
	}
	return result
}

// RegisterAgentRequest maps a platform identity to an agent record and its
// queue assignments.
type RegisterAgentRequest struct {
	PlatformUserID int64   `json:"platform_user_id"`
	QueueIDs       []int64 `json:"queue_ids"`
}

// UpdateAgentQueuesRequest swaps an agent's assignment set.
type UpdateAgentQueuesRequest struct {
	QueueIDs []int64 `json:"queue_ids"`
}

// AgentResponse is the wire shape of an agent record.
type AgentResponse struct {
	ID             int64   `json:"id"`
	PlatformUserID int64   `json:"platform_user_id"`
	QueueIDs       []int64 `json:"queue_ids,omitempty"`
}

// NewAgentListResponse maps agents with their queues.
func NewAgentListResponse(agents []service.AgentWithQueues) []AgentResponse {
	result := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		result = append(result, AgentResponse{
			ID:             a.Agent.ID,
			PlatformUserID: a.Agent.PlatformUserID,
			QueueIDs:       a.Queues,
		})
	}
	return result
}

// RegisterUserRequest maps a platform identity to a requester record.
type RegisterUserRequest struct {
	PlatformUserID int64 `json:"platform_user_id"`
	OrganizationID int64 `json:"organization_id"`
}

// UserResponse is the wire shape of a requester record.
type UserResponse struct {
	ID             int64 `json:"id"`
	PlatformUserID int64 `json:"platform_user_id"`
	OrganizationID int64 `json:"organization_id"`
}

// NewUserListResponse maps requester records.
func NewUserListResponse(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, UserResponse{
			ID:             u.ID,
			PlatformUserID: u.PlatformUserID,
			OrganizationID: u.OrganizationID,
		})
	}
	return result
}
