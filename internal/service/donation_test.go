package service_test

import (
	"context"
	"testing"

	"github.com/meditactive/meditactive/internal/model"
	"github.com/meditactive/meditactive/internal/repository"
	"github.com/meditactive/meditactive/internal/service"
)

func TestDonate(t *testing.T) {
	gw := newTestGateway(t)
	donations := service.NewDonationService(repository.NewDonationRepository(gw), gw)

	userID := seedUser(t, gw, "mario@example.com", 100)

	result, err := donations.Donate(context.Background(), userID, service.DonationInput{
		Type:  model.DonationTree,
		Coins: 30,
	})
	if err != nil {
		t.Fatalf("Donate: %v", err)
	}

	if result.Balance != 70 {
		t.Errorf("balance = %d, want 70", result.Balance)
	}
	if result.Donation.CoinsSpent != 30 {
		t.Errorf("coins spent = %d, want 30", result.Donation.CoinsSpent)
	}
	if coins := userCoins(t, gw, userID); coins != 70 {
		t.Errorf("stored coins = %d, want 70", coins)
	}
}

func TestDonateInsufficientFunds(t *testing.T) {
	gw := newTestGateway(t)
	donations := service.NewDonationService(repository.NewDonationRepository(gw), gw)

	userID := seedUser(t, gw, "mario@example.com", 10)

	_, err := donations.Donate(context.Background(), userID, service.DonationInput{
		Type:  model.DonationTree,
		Coins: 30,
	})
	if service.KindOf(err) != service.KindInsufficientFunds {
		t.Errorf("kind = %v, want KindInsufficientFunds (err: %v)", service.KindOf(err), err)
	}

	// Nothing recorded, nothing debited
	if coins := userCoins(t, gw, userID); coins != 10 {
		t.Errorf("coins = %d, want 10", coins)
	}
	list, err := donations.Donations(context.Background(), userID)
	if err != nil {
		t.Fatalf("Donations: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("donations = %d, want 0", len(list))
	}
}

func TestDonateInvalidType(t *testing.T) {
	gw := newTestGateway(t)
	donations := service.NewDonationService(repository.NewDonationRepository(gw), gw)

	userID := seedUser(t, gw, "mario@example.com", 100)

	_, err := donations.Donate(context.Background(), userID, service.DonationInput{
		Type:  "charity",
		Coins: 30,
	})
	if service.KindOf(err) != service.KindInvalid {
		t.Errorf("kind = %v, want KindInvalid (err: %v)", service.KindOf(err), err)
	}
}

func TestDonationStats(t *testing.T) {
	gw := newTestGateway(t)
	donations := service.NewDonationService(repository.NewDonationRepository(gw), gw)

	userID := seedUser(t, gw, "mario@example.com", 100)

	for _, in := range []service.DonationInput{
		{Type: model.DonationTree, Coins: 10},
		{Type: model.DonationTree, Coins: 10},
		{Type: model.DonationProject, Coins: 25},
	} {
		_, err := donations.Donate(context.Background(), userID, in)
		if err != nil {
			t.Fatalf("Donate: %v", err)
		}
	}

	stats, err := donations.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %d, want 2", len(stats))
	}

	byType := map[model.DonationType]*model.DonationStat{}
	for _, s := range stats {
		byType[s.Type] = s
	}
	if byType[model.DonationTree].Count != 2 || byType[model.DonationTree].TotalCoins != 20 {
		t.Errorf("tree stats = %+v, want count 2, total 20", byType[model.DonationTree])
	}
	if byType[model.DonationProject].Count != 1 || byType[model.DonationProject].TotalCoins != 25 {
		t.Errorf("project stats = %+v, want count 1, total 25", byType[model.DonationProject])
	}
}
