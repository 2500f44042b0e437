// internal/services/support_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wasteyuse/creatorly-backend/internal/models"
	"github.com/wasteyuse/creatorly-backend/internal/utils"
)

var (
	ErrTicketNotFound  = errors.New("support ticket not found")
	ErrTicketNotOwned  = errors.New("ticket belongs to another user")
	ErrInvalidTicketStatus = errors.New("invalid ticket status")
)

type SupportService struct {
	db *gorm.DB
}

type CreateTicketRequest struct {
	Subject string `json:"subject" validate:"required,min=3,max=255"`
	Message string `json:"message" validate:"required,min=10"`
}

type TicketFilter struct {
	utils.PaginationParams
	UserID *uuid.UUID           `json:"user_id,omitempty"`
	Status *models.TicketStatus `json:"status,omitempty"`
}

func NewSupportService(db *gorm.DB) *SupportService {
	return &SupportService{db: db}
}

func (s *SupportService) CreateTicket(userID uuid.UUID, req CreateTicketRequest) (*models.SupportTicket, error) {
	ticket := models.SupportTicket{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.TicketStatusOpen,
	}
	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return &ticket, nil
}

func (s *SupportService) GetTicket(ticketID uuid.UUID) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := s.db.Preload("User").First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &ticket, nil
}

// GetUserTicket loads a ticket only if it belongs to the given user.
func (s *SupportService) GetUserTicket(ticketID, userID uuid.UUID) (*models.SupportTicket, error) {
	ticket, err := s.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ErrTicketNotOwned
	}
	return ticket, nil
}

func (s *SupportService) ListTickets(filter TicketFilter) ([]models.SupportTicket, int64, error) {
	query := s.db.Model(&models.SupportTicket{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("subject LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "status"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var tickets []models.SupportTicket
	if err := query.Preload("User").Find(&tickets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tickets: %w", err)
	}
	return tickets, total, nil
}

func (s *SupportService) UpdateTicketStatus(ticketID uuid.UUID, status models.TicketStatus, adminID uuid.UUID, notes string) (*models.SupportTicket, error) {
	switch status {
	case models.TicketStatusOpen, models.TicketStatusInProgress, models.TicketStatusResolved, models.TicketStatusClosed:
	default:
		return nil, ErrInvalidTicketStatus
	}

	var ticket models.SupportTicket
	if err := s.db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	ticket.Status = status
	if notes != "" {
		ticket.AdminNotes = notes
	}
	if status == models.TicketStatusResolved || status == models.TicketStatusClosed {
		now := time.Now()
		ticket.ResolvedBy = &adminID
		ticket.ResolvedAt = &now
	}

	if err := s.db.Save(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return &ticket, nil
}
