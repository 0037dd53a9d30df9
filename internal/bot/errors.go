package bot

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/molinju/send-price-bot/internal/fetch"
)

var (
	// ErrNotConfigured means the default chain and contract are not set.
	ErrNotConfigured = errors.New("default chain and contract not configured")
	// ErrNoPairs means the upstream answered but listed nothing usable.
	ErrNoPairs = errors.New("no pairs for the configured contract")
)

// CooldownError rejects a command repeated before its window elapsed.
type CooldownError struct {
	Wait time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active for another %s", e.Wait)
}

// UserMessage translates err into the Spanish reply the bot sends.
// Unknown errors get the generic failure text.
func UserMessage(err error) string {
	var (
		cd *CooldownError
		rl *fetch.RateLimitError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "Configura DEFAULT_DEX_CHAIN y DEFAULT_DEX_CONTRACT."
	case errors.Is(err, ErrNoPairs):
		return "Sin pares para el contrato configurado."
	case errors.As(err, &cd):
		return fmt.Sprintf("Espera %ds antes de repetir el comando.", ceilSeconds(cd.Wait))
	case errors.As(err, &rl):
		if rl.RetryAfter > 0 {
			return fmt.Sprintf("El proveedor está limitando las consultas. Prueba en ~%ds.", ceilSeconds(rl.RetryAfter))
		}
		return "El proveedor está limitando las consultas. Prueba de nuevo en un momento."
	}
	return "No se pudo obtener el precio. Inténtalo más tarde."
}

func ceilSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		s = 1
	}
	return s
}
