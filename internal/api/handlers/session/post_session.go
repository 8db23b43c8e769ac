package session

import (
	"net/http"

	"github.com/SafeMPC/onramp-service/internal/api"
	"github.com/SafeMPC/onramp-service/internal/api/httperrors"
	"github.com/SafeMPC/onramp-service/internal/cdp"
	"github.com/SafeMPC/onramp-service/internal/chain"
	"github.com/SafeMPC/onramp-service/internal/config"
	"github.com/SafeMPC/onramp-service/internal/types"
	"github.com/SafeMPC/onramp-service/internal/util"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
)

func PostSessionRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/session", postSessionHandler(s))
}

// postSessionHandler answers 200 with a token for every well-formed request, remote failures
// included. Only bodies that are not JSON or violate the schema are rejected.
func postSessionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSessionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		wallets, err := destinationWallets(s.Config.Onramp, &body)
		if err != nil {
			log.Debug().Err(err).Msg("Rejecting session request with invalid destination address")
			return httperrors.NewInvalidAddressError(err.Error())
		}

		result := s.CDP.IssueSessionToken(ctx, wallets)

		log.Info().
			Str("origin", string(result.Origin)).
			Int("wallets", len(wallets)).
			Time("expires_at", result.ExpiresAt).
			Msg("Issued session token")

		expiresAt := strfmt.DateTime(result.ExpiresAt.UTC())
		response := &types.SessionTokenResponse{
			Token:     swag.String(result.Token),
			ExpiresAt: &expiresAt,
			Origin:    swag.String(string(result.Origin)),
			Fallback:  result.IsFallback(),
			Env:       result.Env,
			Error:     result.Error,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

// destinationWallets applies the filter precedence address > request > defaults. Without any
// addresses the configured operator wallet is used with the request filters.
func destinationWallets(cfg config.Onramp, body *types.PostSessionPayload) ([]cdp.DestinationWallet, error) {
	blockchains := cfg.DefaultBlockchains
	if len(body.Blockchains) > 0 {
		blockchains = body.Blockchains
	}

	assets := cfg.DefaultAssets
	if len(body.Assets) > 0 {
		assets = body.Assets
	}

	if len(body.Addresses) == 0 {
		wallet := cdp.DefaultDestinationWallet(cfg)
		wallet.Blockchains = util.UniqueStrings(blockchains)
		wallet.Assets = util.UniqueStrings(assets)
		return []cdp.DestinationWallet{wallet}, nil
	}

	wallets := make([]cdp.DestinationWallet, 0, len(body.Addresses))
	for _, a := range body.Addresses {
		wallet := cdp.DestinationWallet{
			Address:     swag.StringValue(a.Address),
			Blockchains: util.UniqueStrings(blockchains),
			Assets:      util.UniqueStrings(assets),
		}
		if len(a.Blockchains) > 0 {
			wallet.Blockchains = util.UniqueStrings(a.Blockchains)
		}
		if len(a.Assets) > 0 {
			wallet.Assets = util.UniqueStrings(a.Assets)
		}

		if err := chain.ValidateAddress(wallet.Address, wallet.Blockchains); err != nil {
			return nil, err
		}

		wallets = append(wallets, wallet)
	}

	return wallets, nil
}
