package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteyuse/creatorly-backend/internal/models"
)

func TestSupportTicketLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupportService(db)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	ticket, err := svc.CreateTicket(creator.ID, CreateTicketRequest{
		Subject: "Payout stuck",
		Message: "My payout request has been pending for two weeks.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)

	updated, err := svc.UpdateTicketStatus(ticket.ID, models.TicketStatusResolved, admin.ID, "processed manually")
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusResolved, updated.Status)
	assert.Equal(t, "processed manually", updated.AdminNotes)
	require.NotNil(t, updated.ResolvedBy)
	assert.Equal(t, admin.ID, *updated.ResolvedBy)
	assert.NotNil(t, updated.ResolvedAt)
}

func TestSupportTicketOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupportService(db)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	ticket, err := svc.CreateTicket(creator.ID, CreateTicketRequest{
		Subject: "Account question",
		Message: "How do I change my username on the platform?",
	})
	require.NoError(t, err)

	_, err = svc.GetUserTicket(ticket.ID, creator.ID)
	assert.NoError(t, err)

	_, err = svc.GetUserTicket(ticket.ID, admin.ID)
	assert.ErrorIs(t, err, ErrTicketNotOwned)
}

func TestSupportTicketListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewSupportService(db)
	creator := seedCreator(t, db)
	admin := seedAdmin(t, db)

	first, err := svc.CreateTicket(creator.ID, CreateTicketRequest{
		Subject: "First issue",
		Message: "Something broke on my dashboard page.",
	})
	require.NoError(t, err)
	_, err = svc.CreateTicket(creator.ID, CreateTicketRequest{
		Subject: "Second issue",
		Message: "Another thing broke on my profile page.",
	})
	require.NoError(t, err)

	_, err = svc.UpdateTicketStatus(first.ID, models.TicketStatusClosed, admin.ID, "")
	require.NoError(t, err)

	open := models.TicketStatusOpen
	tickets, total, err := svc.ListTickets(TicketFilter{UserID: &creator.ID, Status: &open})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tickets, 1)
	assert.Equal(t, "Second issue", tickets[0].Subject)
}
