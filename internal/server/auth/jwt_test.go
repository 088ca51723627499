package auth

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source shared between Issue and Verify.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

var epoch = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestCodec(t *testing.T, secret string) (*Codec, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: epoch}
	c, err := NewCodec([]byte(secret), WithClock(clock.Now))
	require.NoError(t, err)
	return c, clock
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")

	tok, err := c.Issue("admin")
	require.NoError(t, err)

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, epoch, claims.IssuedAtTime().UTC())
	assert.Equal(t, epoch.Add(24*time.Hour), claims.ExpiresAtTime().UTC())
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_IsIdempotent(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")
	tok, err := c.Issue("admin")
	require.NoError(t, err)

	first, err := c.Verify(tok)
	require.NoError(t, err)
	second, err := c.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, first.Subject, second.Subject)
	assert.Equal(t, first.ID, second.ID)
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")
	a, err := c.Issue("admin")
	require.NoError(t, err)
	b, err := c.Issue("admin")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two tokens issued in the same second must differ")
}

func TestIssue_EmptySubject(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")
	_, err := c.Issue("")
	require.ErrorIs(t, err, common.ErrEmptySubject)
}

func TestNewCodec_EmptySecret(t *testing.T) {
	t.Parallel()

	c, err := NewCodec(nil)
	require.ErrorIs(t, err, common.ErrConfiguration)
	assert.Nil(t, c)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	c, clock := newTestCodec(t, "super-secret")
	tok, err := c.Issue("admin")
	require.NoError(t, err)

	clock.Set(epoch.Add(24*time.Hour - time.Second))
	claims, err := c.Verify(tok)
	require.NoError(t, err, "token must still be valid one second before expiry")
	assert.Equal(t, "admin", claims.Subject)

	clock.Set(epoch.Add(24*time.Hour + time.Second))
	_, err = c.Verify(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
	assert.False(t, errors.Is(err, common.ErrSignatureInvalid))
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, _ := newTestCodec(t, "right-secret")
	verifier, _ := newTestCodec(t, "wrong-secret")

	tok, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, common.ErrSignatureInvalid)
}

func TestVerify_SignatureCheckedBeforeExpiry(t *testing.T) {
	t.Parallel()

	issuer, _ := newTestCodec(t, "right-secret")
	verifier, clock := newTestCodec(t, "wrong-secret")

	tok, err := issuer.Issue("admin")
	require.NoError(t, err)

	clock.Set(epoch.Add(48 * time.Hour))
	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, common.ErrSignatureInvalid)
	assert.False(t, errors.Is(err, common.ErrTokenExpired))
}

func TestVerify_AnySingleByteMutationFails(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")
	tok, err := c.Issue("admin")
	require.NoError(t, err)

	for i := 0; i < len(tok); i++ {
		mutated := []byte(tok)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}

		_, err := c.Verify(string(mutated))
		if err == nil {
			t.Fatalf("mutation at byte %d (%q) was accepted", i, tok[i])
		}
	}
}

func TestVerify_MalformedInputs(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "k")

	for _, in := range []string{"", "not.a.jwt", "abc", "a.b", "....."} {
		_, err := c.Verify(in)
		require.ErrorIs(t, err, common.ErrTokenMalformed, "input %q", in)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(epoch),
		ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Hour)),
	}}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(c.key)
	require.NoError(t, err)
	_, err = c.Verify(hs512)
	require.ErrorIs(t, err, common.ErrSignatureInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Verify(none)
	require.Error(t, err)
}

func TestVerify_RequiresExpiryAndSubject(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  "admin",
		IssuedAt: jwt.NewNumericDate(epoch),
	}}).SignedString(c.key)
	require.NoError(t, err)
	_, err = c.Verify(noExp)
	require.ErrorIs(t, err, common.ErrTokenMalformed)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(epoch),
		ExpiresAt: jwt.NewNumericDate(epoch.Add(time.Hour)),
	}}).SignedString(c.key)
	require.NoError(t, err)
	_, err = c.Verify(noSub)
	require.ErrorIs(t, err, common.ErrTokenMalformed)
}

func TestVerify_RejectsTokenIssuedInTheFuture(t *testing.T) {
	t.Parallel()

	c, _ := newTestCodec(t, "super-secret")

	future, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(epoch.Add(time.Hour)),
		ExpiresAt: jwt.NewNumericDate(epoch.Add(2 * time.Hour)),
	}}).SignedString(c.key)
	require.NoError(t, err)

	_, err = c.Verify(future)
	require.Error(t, err)
}

func TestWithLifetime(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: epoch}
	c, err := NewCodec([]byte("s"), WithClock(clock.Now), WithLifetime(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, c.Lifetime())

	tok, err := c.Issue("admin")
	require.NoError(t, err)

	clock.Set(epoch.Add(2 * time.Minute))
	_, err = c.Verify(tok)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}
