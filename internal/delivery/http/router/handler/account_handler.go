package handler

import (
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	Account usecase.AccountUsecase
	QRCode  service.QRCodeService
}

// AccountHandler serves the signed-in user's profile, orders and addresses.
// Every route runs behind the auth middleware.
type AccountHandler struct {
	account usecase.AccountUsecase
	qrcode  service.QRCodeService
}

func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		account: params.Account,
		qrcode:  params.QRCode,
	}
}

// AdvanceOrderRequest is the body of POST /api/account/orders/:id/advance.
type AdvanceOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AccountHandler) Me(c echo.Context) error {
	if user, ok := deliverycontext.GetUser(c); ok {
		return response.OK(c, user)
	}

	user, err := h.account.CurrentUser(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, user)
}

func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := bind(c, &input); err != nil {
		return err
	}

	user, err := h.account.UpdateProfile(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, user, "Profile updated")
}

// Orders filters by the optional status query parameter; "all" or none returns everything.
func (h *AccountHandler) Orders(c echo.Context) error {
	status := entity.OrderStatusAll
	if raw := c.QueryParam("status"); raw != "" && raw != string(entity.OrderStatusAll) {
		parsed, err := entity.ParseOrderStatus(raw)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}
		status = parsed
	}

	orders, err := h.account.FilterOrders(c.Request().Context(), status)
	if err != nil {
		return err
	}

	return response.OK(c, orders)
}

func (h *AccountHandler) GetOrder(c echo.Context) error {
	order, err := h.account.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, order)
}

func (h *AccountHandler) AdvanceOrder(c echo.Context) error {
	var req AdvanceOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	next, err := entity.ParseOrderStatus(req.Status)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	order, err := h.account.AdvanceOrderStatus(c.Request().Context(), c.Param("id"), next)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// OrderQRCode renders the order tracking QR code as a PNG.
func (h *AccountHandler) OrderQRCode(c echo.Context) error {
	order, err := h.account.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	png, err := h.qrcode.GenerateOrderQR(order)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *AccountHandler) Addresses(c echo.Context) error {
	addresses, err := h.account.Addresses(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, addresses)
}

func (h *AccountHandler) AddAddress(c echo.Context) error {
	var input usecase.AddressInput
	if err := bind(c, &input); err != nil {
		return err
	}

	address, err := h.account.AddAddress(c.Request().Context(), &input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, address, "Address saved")
}

func (h *AccountHandler) DeleteAddress(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := h.account.DeleteAddress(c.Request().Context(), id); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Address deleted")
}
