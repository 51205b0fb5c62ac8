package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"strings"
	"time"

	"github.com/coursedesk/courseapi/internal/logging"
)

const (
	verdictKeyPrefix   = "emailcheck:"
	verdictPlausible   = "ok"
	verdictImplausible = "bad"

	defaultCheckTimeout = 5 * time.Second
	defaultCacheTTL     = time.Hour
)

// ErrEmailImplausible means the address failed the syntax or
// deliverability check. Anything else returned by Check is a failure of
// the checker itself.
var ErrEmailImplausible = errors.New("email address doesn't check out")

// MXResolver looks up mail exchangers for a domain. net.DefaultResolver
// satisfies it.
type MXResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// VerdictCache stores past plausibility verdicts keyed by domain.
type VerdictCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// EmailChecker decides whether an address is plausibly deliverable:
// RFC 5322 syntax plus at least one MX record on the domain. The DNS
// lookup is bounded by timeout; a lookup that cannot complete in time
// counts against the address rather than stalling registration.
type EmailChecker struct {
	resolver MXResolver
	cache    VerdictCache
	timeout  time.Duration
	cacheTTL time.Duration
	stub     bool
}

func NewEmailChecker(resolver MXResolver, cache VerdictCache, timeout, cacheTTL time.Duration, stub bool) *EmailChecker {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &EmailChecker{
		resolver: resolver,
		cache:    cache,
		timeout:  timeout,
		cacheTTL: cacheTTL,
		stub:     stub,
	}
}

// Check returns nil for a plausible address, ErrEmailImplausible for an
// implausible one, and a wrapped resolver error if the check itself
// failed.
func (c *EmailChecker) Check(ctx context.Context, email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return ErrEmailImplausible
	}

	at := strings.LastIndex(addr.Address, "@")
	domain := addr.Address[at+1:]
	if domain == "" {
		return ErrEmailImplausible
	}

	if c.stub {
		return nil
	}

	key := verdictKeyPrefix + strings.ToLower(domain)
	if c.cache != nil {
		verdict, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			// Cache trouble must not block registration
			logging.Warn("Email verdict cache read failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			if verdict == verdictPlausible {
				return nil
			}
			return ErrEmailImplausible
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.resolver.LookupMX(lookupCtx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && (dnsErr.IsNotFound || dnsErr.IsTimeout) {
			c.storeVerdict(ctx, key, verdictImplausible)
			return ErrEmailImplausible
		}
		if errors.Is(err, context.DeadlineExceeded) {
			c.storeVerdict(ctx, key, verdictImplausible)
			return ErrEmailImplausible
		}
		return fmt.Errorf("looking up mx records for %s: %w", domain, err)
	}

	if len(records) == 0 {
		c.storeVerdict(ctx, key, verdictImplausible)
		return ErrEmailImplausible
	}

	c.storeVerdict(ctx, key, verdictPlausible)
	return nil
}

func (c *EmailChecker) storeVerdict(ctx context.Context, key, verdict string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, verdict, c.cacheTTL); err != nil {
		logging.Warn("Email verdict cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
