package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jesses-code-adventures/facturier/internal/models"
)

func TestSaveClientUpsertsByName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	first, created, err := svc.SaveClient(ctx, models.ClientInfo{Name: "  Acme SARL ", City: "Lyon"})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "Acme SARL", first.Name)

	second, created, err := svc.SaveClient(ctx, models.ClientInfo{Name: "ACME sarl", City: "Paris"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Paris", second.City)

	clients := svc.ListClients(ctx)
	require.Len(t, clients, 1)
	require.Equal(t, "ACME sarl", clients[0].Name)

	_, _, err = svc.SaveClient(ctx, models.ClientInfo{Name: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestClientChangesDoNotTouchDocuments(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	client, _, err := svc.SaveClient(ctx, models.ClientInfo{Name: "Acme SARL", City: "Lyon"})
	require.NoError(t, err)

	draft, err := svc.NewDraft(ctx, models.DocumentTypeInvoice)
	require.NoError(t, err)
	draft.UseClient(client)
	draft.Items[0].Description = "Conseil"
	draft.Items[0].UnitPrice = 10
	doc, err := svc.SaveDraft(ctx, draft, "")
	require.NoError(t, err)
	require.Equal(t, client.ID, *doc.ClientID)

	_, _, err = svc.SaveClient(ctx, models.ClientInfo{Name: "Acme SARL", City: "Paris"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteClient(ctx, client.ID))

	stored, err := svc.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "Lyon", stored.Client.City)

	_, err = svc.GetClient(ctx, client.ID)
	require.ErrorIs(t, err, ErrClientNotFound)
	require.ErrorIs(t, svc.DeleteClient(ctx, client.ID), ErrClientNotFound)
}

func TestListClientsSortedByName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, newMemDB())

	for _, name := range []string{"Zèbre Studio", "atelier Nord", "Boulangerie Martin"} {
		_, _, err := svc.SaveClient(ctx, models.ClientInfo{Name: name})
		require.NoError(t, err)
	}

	var names []string
	for _, c := range svc.ListClients(ctx) {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"atelier Nord", "Boulangerie Martin", "Zèbre Studio"}, names)

	found, err := svc.FindClientByName(ctx, "boulangerie martin")
	require.NoError(t, err)
	require.Equal(t, "Boulangerie Martin", found.Name)

	_, err = svc.FindClientByName(ctx, "nobody")
	require.ErrorIs(t, err, ErrClientNotFound)
}
