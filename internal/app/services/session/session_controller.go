package session

import (
	"net/http"

	"ehrbridge-service/internal/pkg/constvars"
	"ehrbridge-service/internal/pkg/dto/requests"
	"ehrbridge-service/internal/pkg/exceptions"
	"ehrbridge-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SessionController struct {
	Log            *zap.Logger
	SessionUsecase SessionUsecase
}

func NewSessionController(logger *zap.Logger, sessionUsecase SessionUsecase) *SessionController {
	return &SessionController{
		Log:            logger,
		SessionUsecase: sessionUsecase,
	}
}

func (ctrl *SessionController) Connect(w http.ResponseWriter, r *http.Request) {
	request := new(requests.EHRConnectionConfig)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.NewAPIError(constvars.ErrMsgBadRequest, constvars.StatusBadRequest, ""))
		return
	}

	if err := ctrl.SessionUsecase.Connect(r.Context(), request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessConnected, ctrl.SessionUsecase.Status())
}

func (ctrl *SessionController) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := ctrl.SessionUsecase.Disconnect(r.Context()); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessDisconnected, ctrl.SessionUsecase.Status())
}

func (ctrl *SessionController) TestConnection(w http.ResponseWriter, r *http.Request) {
	if err := ctrl.SessionUsecase.TestConnection(r.Context()); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessHealthy, ctrl.SessionUsecase.Status())
}

func (ctrl *SessionController) SwitchToDemo(w http.ResponseWriter, r *http.Request) {
	ctrl.SessionUsecase.SwitchToDemo(r.Context())
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SuccessDemoMode, ctrl.SessionUsecase.Status())
}

func (ctrl *SessionController) Status(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, "", ctrl.SessionUsecase.Status())
}
