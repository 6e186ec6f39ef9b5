// Package qr maps orders to scannable payloads and back. Only the embedded id
// is authoritative; the extra lines on merch codes exist so door staff can
// eyeball the order when the ledger lookup is ambiguous.
package qr

import (
	"fmt"
	"strings"

	"github.com/mkandreum/rodetespruebas/internal/domain"
)

type Kind string

const (
	KindUnrecognized Kind = "unrecognized"
	KindTicket       Kind = "ticket"
	KindMerchSale    Kind = "merch_sale"
	KindLegacyTicket Kind = "legacy_ticket"
)

const (
	ticketPrefix   = "TICKET:"
	merchSaleKey   = "MERCH_SALE_ID"
	legacyIDKey    = "TICKET_ID"
	legacyEventKey = "EVENTO"
)

// Decoded is the result of classifying a scanned payload. Fields holds the
// flat key:value lines of block-shaped codes, untrusted beyond display.
type Decoded struct {
	Kind    Kind
	OrderID string
	Fields  map[string]string
}

// EncodeTicket produces the single-token ticket code.
func EncodeTicket(orderID string) string {
	return ticketPrefix + orderID
}

// EncodeMerchSale produces the multi-line merch block. The field keys are the
// historical wire format and must not change while printed codes circulate.
func EncodeMerchSale(sale domain.MerchSale, dragName, itemName string) string {
	return fmt.Sprintf("%s:%s\nNOMBRE:%s\nDRAG:%s\nITEM:%s\nQTY:%d\nEMAIL:%s",
		merchSaleKey, sale.ID, sale.BuyerName(), dragName, itemName, sale.Quantity, sale.Email)
}

// Decode classifies a raw scanned string. It never fails: anything it cannot
// place comes back as KindUnrecognized and the caller treats that as a ticket
// that does not exist.
func Decode(text string) Decoded {
	text = strings.TrimSpace(text)
	if text == "" {
		return Decoded{Kind: KindUnrecognized}
	}

	if strings.HasPrefix(text, ticketPrefix) {
		id := strings.TrimSpace(strings.TrimPrefix(text, ticketPrefix))
		if id == "" || strings.ContainsAny(id, "\n") {
			return Decoded{Kind: KindUnrecognized}
		}
		return Decoded{Kind: KindTicket, OrderID: id}
	}

	if strings.Contains(text, merchSaleKey+":") {
		fields := parseFields(text)
		id := fields[merchSaleKey]
		if id == "" {
			return Decoded{Kind: KindUnrecognized}
		}
		return Decoded{Kind: KindMerchSale, OrderID: id, Fields: fields}
	}

	if strings.Contains(text, legacyIDKey+":") && strings.Contains(text, legacyEventKey+":") {
		fields := parseFields(text)
		id := fields[legacyIDKey]
		if id == "" {
			return Decoded{Kind: KindUnrecognized}
		}
		return Decoded{Kind: KindLegacyTicket, OrderID: id, Fields: fields}
	}

	return Decoded{Kind: KindUnrecognized}
}

func parseFields(text string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(key)), " ", "_")
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}
