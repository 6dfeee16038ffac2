package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aru-nika-08/attendance-tracking-system/internal/config"
	qrHTTP "github.com/aru-nika-08/attendance-tracking-system/internal/qr/http"
	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
	"github.com/aru-nika-08/attendance-tracking-system/internal/qr/store"
	qrUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase"
)

// Signer returns the HMAC signer for QR tokens.
func (c *Container) Signer() qrService.Signer {
	c.signerInit.Do(func() {
		c.signer = qrService.NewSigner()
	})
	return c.signer
}

// TokenCodec returns the QR token codec.
func (c *Container) TokenCodec() qrService.TokenCodec {
	c.tokenCodecInit.Do(func() {
		c.tokenCodec = qrService.NewTokenCodec(c.Signer())
	})
	return c.tokenCodec
}

// RandomSource returns the cryptographic random source for nonces and session ids.
func (c *Container) RandomSource() qrService.RandomSource {
	c.randomSourceInit.Do(func() {
		c.randomSource = qrService.NewRandomSource()
	})
	return c.randomSource
}

// KMSService returns the KMS keeper factory.
func (c *Container) KMSService() qrService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = qrService.NewKMSService()
	})
	return c.kmsService
}

// SigningSecret returns the raw QR signing secret, unwrapped through KMS when
// a key URI is configured.
func (c *Container) SigningSecret() ([]byte, error) {
	c.signingSecretInit.Do(func() {
		secret, err := qrService.LoadSigningSecret(
			c.ctx,
			c.KMSService(),
			c.config.KMSKeyURI,
			c.config.QRSigningKey,
		)
		if err != nil {
			c.storeError("signingSecret", fmt.Errorf("failed to load signing secret: %w", err))
			return
		}
		c.signingSecret = secret
	})
	if err := c.loadError("signingSecret"); err != nil {
		return nil, err
	}
	return c.signingSecret, nil
}

// TokenIssuer returns the token issuer, wrapped with metrics.
func (c *Container) TokenIssuer() (qrUseCase.TokenIssuer, error) {
	c.tokenIssuerInit.Do(func() {
		var err error
		if c.tokenIssuer, err = c.initTokenIssuer(); err != nil {
			c.storeError("tokenIssuer", err)
		}
	})
	if err := c.loadError("tokenIssuer"); err != nil {
		return nil, err
	}
	return c.tokenIssuer, nil
}

// TokenVerifier returns the token verifier, wrapped with metrics.
func (c *Container) TokenVerifier() (qrUseCase.TokenVerifier, error) {
	c.tokenVerifierInit.Do(func() {
		var err error
		if c.tokenVerifier, err = c.initTokenVerifier(); err != nil {
			c.storeError("tokenVerifier", err)
		}
	})
	if err := c.loadError("tokenVerifier"); err != nil {
		return nil, err
	}
	return c.tokenVerifier, nil
}

// RedisClient returns the redis client backing the session store.
func (c *Container) RedisClient() (*redis.Client, error) {
	c.redisClientInit.Do(func() {
		client, err := store.NewRedisClient(c.ctx, c.config.RedisAddr, c.config.RedisPassword, c.config.RedisDB)
		if err != nil {
			c.storeError("redisClient", err)
			return
		}
		c.redisClient = client
	})
	if err := c.loadError("redisClient"); err != nil {
		return nil, err
	}
	return c.redisClient, nil
}

// SessionStore returns the scan session store selected by SESSION_STORE_DRIVER,
// wrapped with metrics.
func (c *Container) SessionStore() (qrUseCase.SessionStore, error) {
	c.sessionStoreInit.Do(func() {
		var err error
		if c.sessionStore, err = c.initSessionStore(); err != nil {
			c.storeError("sessionStore", err)
		}
	})
	if err := c.loadError("sessionStore"); err != nil {
		return nil, err
	}
	return c.sessionStore, nil
}

// SessionSweeper returns the periodic scan session evictor.
func (c *Container) SessionSweeper() (qrUseCase.SessionSweeper, error) {
	c.sessionSweeperInit.Do(func() {
		sessionStore, err := c.SessionStore()
		if err != nil {
			c.storeError("sessionSweeper", fmt.Errorf("failed to get session store for sweeper: %w", err))
			return
		}
		c.sessionSweeper = qrUseCase.NewSessionSweeper(sessionStore, c.config.SessionSweepInterval, c.Logger())
	})
	if err := c.loadError("sessionSweeper"); err != nil {
		return nil, err
	}
	return c.sessionSweeper, nil
}

// QRHandler returns the HTTP handler for token issuance.
func (c *Container) QRHandler() (*qrHTTP.QRHandler, error) {
	c.qrHandlerInit.Do(func() {
		issuer, err := c.TokenIssuer()
		if err != nil {
			c.storeError("qrHandler", fmt.Errorf("failed to get token issuer for qr handler: %w", err))
			return
		}
		c.qrHandler = qrHTTP.NewQRHandler(issuer, c.Logger())
	})
	if err := c.loadError("qrHandler"); err != nil {
		return nil, err
	}
	return c.qrHandler, nil
}

func (c *Container) initTokenIssuer() (qrUseCase.TokenIssuer, error) {
	secret, err := c.SigningSecret()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token issuer: %w", err)
	}

	issuer := qrUseCase.NewTokenIssuer(
		c.TokenCodec(),
		c.RandomSource(),
		secret,
		c.config.QRTokenTTL,
		c.Logger(),
	)
	return qrUseCase.NewTokenIssuerWithMetrics(issuer, bm), nil
}

func (c *Container) initTokenVerifier() (qrUseCase.TokenVerifier, error) {
	secret, err := c.SigningSecret()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token verifier: %w", err)
	}

	verifier := qrUseCase.NewTokenVerifier(
		c.TokenCodec(),
		c.Signer(),
		secret,
		c.config.QRTokenTTL,
		c.Logger(),
	)
	return qrUseCase.NewTokenVerifierWithMetrics(verifier, bm), nil
}

func (c *Container) initSessionStore() (qrUseCase.SessionStore, error) {
	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for session store: %w", err)
	}

	maxAge := c.config.SessionMaxAge()

	var sessionStore qrUseCase.SessionStore
	switch c.config.SessionStoreDriver {
	case config.SessionStoreRedis:
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for session store: %w", err)
		}
		sessionStore = store.NewRedisSessionStore(client, c.RandomSource(), maxAge)
	case config.SessionStoreMemory:
		sessionStore = store.NewMemorySessionStore(c.RandomSource(), maxAge)
	default:
		return nil, fmt.Errorf("unsupported session store driver: %s", c.config.SessionStoreDriver)
	}

	return qrUseCase.NewSessionStoreWithMetrics(sessionStore, bm), nil
}
