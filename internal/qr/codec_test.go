package qr

import (
	"testing"

	"github.com/mkandreum/rodetespruebas/internal/domain"
)

func TestDecode_Ticket(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the encoded form", func(t *testing.T) {
		code := EncodeTicket("9b2e2a1c-4f6d-4c3a-8f2e-000000000001")
		d := Decode(code)
		if d.Kind != KindTicket {
			t.Fatalf("expected ticket kind, got %s", d.Kind)
		}
		if d.OrderID != "9b2e2a1c-4f6d-4c3a-8f2e-000000000001" {
			t.Fatalf("unexpected order id %q", d.OrderID)
		}
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		d := Decode("  TICKET:abc-123  \n")
		if d.Kind != KindTicket || d.OrderID != "abc-123" {
			t.Fatalf("unexpected decode %+v", d)
		}
	})

	t.Run("rejects empty id", func(t *testing.T) {
		if d := Decode("TICKET:"); d.Kind != KindUnrecognized {
			t.Fatalf("expected unrecognized, got %s", d.Kind)
		}
	})

	t.Run("rejects multi-line id", func(t *testing.T) {
		if d := Decode("TICKET:abc\nmore"); d.Kind != KindUnrecognized {
			t.Fatalf("expected unrecognized, got %s", d.Kind)
		}
	})
}

func TestDecode_MerchSale(t *testing.T) {
	t.Parallel()

	sale := domain.MerchSale{
		ID:        "s-1",
		FirstName: "Cati",
		LastName:  "Ferrer",
		Email:     "cati@example.com",
		Quantity:  2,
	}

	t.Run("round-trips the encoded block", func(t *testing.T) {
		code := EncodeMerchSale(sale, "Victoria", "Tote")
		d := Decode(code)
		if d.Kind != KindMerchSale {
			t.Fatalf("expected merch sale kind, got %s", d.Kind)
		}
		if d.OrderID != "s-1" {
			t.Fatalf("unexpected sale id %q", d.OrderID)
		}
		if d.Fields["NOMBRE"] != "Cati Ferrer" {
			t.Fatalf("expected buyer name field, got %q", d.Fields["NOMBRE"])
		}
		if d.Fields["DRAG"] != "Victoria" || d.Fields["ITEM"] != "Tote" {
			t.Fatalf("unexpected fields %v", d.Fields)
		}
		if d.Fields["QTY"] != "2" {
			t.Fatalf("expected qty field, got %q", d.Fields["QTY"])
		}
	})

	t.Run("recognizes the key anywhere in the block", func(t *testing.T) {
		d := Decode("NOMBRE:X\nMERCH_SALE_ID:s-9\nQTY:1")
		if d.Kind != KindMerchSale || d.OrderID != "s-9" {
			t.Fatalf("unexpected decode %+v", d)
		}
	})

	t.Run("rejects block without sale id value", func(t *testing.T) {
		if d := Decode("MERCH_SALE_ID:\nNOMBRE:X"); d.Kind != KindUnrecognized {
			t.Fatalf("expected unrecognized, got %s", d.Kind)
		}
	})
}

func TestDecode_LegacyTicket(t *testing.T) {
	t.Parallel()

	t.Run("recognizes the historical block shape", func(t *testing.T) {
		d := Decode("TICKET_ID:t-77\nEVENTO:Gala de Nadal\nNOMBRE:Cati")
		if d.Kind != KindLegacyTicket {
			t.Fatalf("expected legacy ticket kind, got %s", d.Kind)
		}
		if d.OrderID != "t-77" {
			t.Fatalf("unexpected order id %q", d.OrderID)
		}
		if d.Fields["EVENTO"] != "Gala de Nadal" {
			t.Fatalf("unexpected event field %q", d.Fields["EVENTO"])
		}
	})

	t.Run("requires both legacy keys", func(t *testing.T) {
		if d := Decode("TICKET_ID:t-77\nNOMBRE:Cati"); d.Kind != KindUnrecognized {
			t.Fatalf("expected unrecognized without EVENTO, got %s", d.Kind)
		}
	})

	t.Run("simple prefix wins over legacy key", func(t *testing.T) {
		// TICKET: and TICKET_ID: do not overlap; a simple code with a colon
		// id stays a simple code.
		d := Decode("TICKET:t-77")
		if d.Kind != KindTicket {
			t.Fatalf("expected simple ticket kind, got %s", d.Kind)
		}
	})
}

func TestDecode_Unrecognized(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"   ",
		"https://example.com/whatever",
		"random text",
		"TICKET_ID:orphan-without-event",
	}
	for _, raw := range cases {
		if d := Decode(raw); d.Kind != KindUnrecognized {
			t.Fatalf("payload %q: expected unrecognized, got %s", raw, d.Kind)
		}
	}
}

func TestParseFields_NormalizesKeys(t *testing.T) {
	t.Parallel()

	fields := parseFields("merch sale id:s-1\n  Qty : 3\nno-separator-line\n:empty-key")
	if fields["MERCH_SALE_ID"] != "s-1" {
		t.Fatalf("expected normalized key, got %v", fields)
	}
	if fields["QTY"] != "3" {
		t.Fatalf("expected trimmed value, got %v", fields)
	}
	if _, ok := fields[""]; ok {
		t.Fatalf("empty keys must be dropped")
	}
}
