package auth

import (
	"net/http"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase AuthUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase AuthUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *AuthController) ExchangeToken(w http.ResponseWriter, r *http.Request) {
	request := new(requests.TokenExchangeRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}

	tokens, err := ctrl.AuthUsecase.ExchangeToken(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "", tokens)
}
