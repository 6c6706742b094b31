package handlers

import (
	"sync"

	"github.com/mdrobiulislam1479/ticket-point-server/internal/idempotency"
	"github.com/mdrobiulislam1479/ticket-point-server/internal/payment"
)

var (
	depsMu         sync.RWMutex
	paymentGateway payment.Gateway
	sessionGuard   *idempotency.SessionGuard
)

// SetPaymentGateway wires the external payment capability at startup.
func SetPaymentGateway(gw payment.Gateway) {
	depsMu.Lock()
	defer depsMu.Unlock()
	paymentGateway = gw
}

// SetSessionGuard wires the optional redis reconciliation guard.
func SetSessionGuard(g *idempotency.SessionGuard) {
	depsMu.Lock()
	defer depsMu.Unlock()
	sessionGuard = g
}

func gateway() payment.Gateway {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return paymentGateway
}

func sessions() *idempotency.SessionGuard {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return sessionGuard
}
