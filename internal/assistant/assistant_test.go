package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/router"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/synonyms"
	"github.com/marcinkowskimikolaj/assetly/internal/domain"
)

func fuelSession() *router.Session {
	c := cache.Build([]domain.Transaction{
		{Year: 2024, Month: 1, Category: "Auto i transport", Subcategory: "Paliwo", AmountBase: 1000},
		{Year: 2024, Month: 2, Category: "Auto i transport", Subcategory: "Paliwo", AmountBase: 1500},
		{Year: 2024, Month: 3, Category: "Auto i transport", Subcategory: "Paliwo", AmountBase: 800},
	})
	return router.NewSession(c)
}

func TestAskWithoutModelAnswersLocally(t *testing.T) {
	a := New(nil, synonyms.DefaultTable(), zerolog.Nop())

	reply, err := a.Ask(context.Background(), fuelSession(), "ile wydałem na paliwo?")
	if err != nil {
		t.Fatal(err)
	}

	if reply.Answer == "" {
		t.Fatal("expected a locally rendered answer")
	}
	if !strings.Contains(reply.Answer, "3300.00") {
		t.Errorf("answer = %q, want the fuel total 3300.00", reply.Answer)
	}
	if reply.Plan == nil || len(reply.Results) == 0 || reply.Capsule == nil {
		t.Errorf("reply missing intermediates: %+v", reply)
	}
}

func TestAskMaxInTimeQuestion(t *testing.T) {
	a := New(nil, synonyms.DefaultTable(), zerolog.Nop())

	reply, err := a.Ask(context.Background(), fuelSession(), "w którym miesiącu wydałem najwięcej na paliwo?")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(reply.Answer, "2024-02") {
		t.Errorf("answer = %q, want the max month 2024-02", reply.Answer)
	}
}

func TestAskRequiresSessionCache(t *testing.T) {
	a := New(nil, synonyms.DefaultTable(), zerolog.Nop())

	if _, err := a.Ask(context.Background(), nil, "cokolwiek"); err == nil {
		t.Fatal("nil session must fail")
	}
	if _, err := a.Ask(context.Background(), router.NewSession(nil), "cokolwiek"); err == nil {
		t.Fatal("session without cache must fail")
	}
}

func TestAskUnknownTopicSaysDataMissing(t *testing.T) {
	a := New(nil, synonyms.DefaultTable(), zerolog.Nop())

	// The cache has fuel only; a food question finds nothing but must not error.
	reply, err := a.Ask(context.Background(), fuelSession(), "ile wydałem na jedzenie?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply.Answer, "Brak danych") {
		t.Errorf("answer = %q, want a missing-data message", reply.Answer)
	}
}
