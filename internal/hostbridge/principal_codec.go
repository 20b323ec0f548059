package hostbridge

import (
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/signinflow/idsignin/pkg/signin"
)

var signingAlgorithms = []jose.SignatureAlgorithm{jose.HS256}

// principalClaims is the JWT payload: standard registered claims plus the
// full claim list carried by a signin.Principal.
type principalClaims struct {
	jwt.Claims
	Items []signin.Claim `json:"items"`
}

// principalCodec signs and verifies a Principal as a compact JWT, using a
// symmetric key independent of the cookie envelope's own key.
type principalCodec struct {
	key []byte
}

func newPrincipalCodec(key []byte) *principalCodec {
	return &principalCodec{key: key}
}

func (c *principalCodec) Encode(p *signin.Principal) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: c.key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	claims := principalClaims{
		Claims: jwt.Claims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		Items: p.Claims,
	}
	return jwt.Signed(signer).Claims(claims).Serialize()
}

func (c *principalCodec) Decode(token string) (*signin.Principal, error) {
	parsed, err := jwt.ParseSigned(token, signingAlgorithms)
	if err != nil {
		return nil, err
	}

	var claims principalClaims
	if err := parsed.Claims(c.key, &claims); err != nil {
		return nil, err
	}

	return signin.NewPrincipal(claims.Items...), nil
}
