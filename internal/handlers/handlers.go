package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderdesk/internal/auth"
	"github.com/wellywell/orderdesk/internal/backend"
	"github.com/wellywell/orderdesk/internal/catalog"
	"github.com/wellywell/orderdesk/internal/desk"
	"github.com/wellywell/orderdesk/internal/prefs"
	"github.com/wellywell/orderdesk/internal/roles"
	"github.com/wellywell/orderdesk/internal/types"
	"github.com/wellywell/orderdesk/internal/validate"
	"github.com/wellywell/orderdesk/internal/view"
)

type Catalog interface {
	Refresh(ctx context.Context) error
	Snapshot() catalog.Snapshot
	StoreNames() view.StoreNames
	User(username string) (types.User, error)
	Assignable(actor types.User) []types.User
	AddUnit(ctx context.Context, actor types.User, name string) error
}

type HandlerSet struct {
	secret               []byte
	cookieExpiresSeconds int
	catalog              Catalog
	desks                *desk.Registry
	prefs                prefs.Store
	now                  func() time.Time
}

var (
	ErrCouldNotParseBody = errors.New("could not parse body")
	ErrAuthDataEmpty     = errors.New("login cannot be empty")
)

func NewHandlerSet(secret []byte, cookieExpiresSecs int, c Catalog, desks *desk.Registry, store prefs.Store) *HandlerSet {
	return &HandlerSet{
		secret:               secret,
		cookieExpiresSeconds: cookieExpiresSecs,
		catalog:              c,
		desks:                desks,
		prefs:                store,
		now:                  time.Now,
	}
}

func parseBody(req *http.Request, v any) error {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrCouldNotParseBody
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	response, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Could not serialize result",
			http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(response)
	if err != nil {
		logger.Error(err)
	}
}

// handleError picks the status code for an error coming out of a workflow.
func handleError(w http.ResponseWriter, err error) {
	var (
		validationErr *validate.ValidationError
		duplicateErr  *validate.DuplicateOrderError
		unknownColumn *view.UnknownColumnError
		notSortable   *view.NotSortableError
		monthFileErr  *desk.MonthFileError
		throttleErr   *backend.ErrThrottle
		serviceErr    *backend.Error
	)

	switch {
	case errors.Is(err, ErrCouldNotParseBody):
		http.Error(w, "Could not parse body", http.StatusBadRequest)
	case errors.As(err, &validationErr), errors.Is(err, validate.ErrNoItems), errors.Is(err, catalog.ErrEmptyUnit):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &unknownColumn), errors.As(err, &notSortable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, roles.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, desk.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &duplicateErr),
		errors.Is(err, desk.ErrOrderLocked),
		errors.Is(err, desk.ErrRowBusy),
		errors.Is(err, desk.ErrSubmitting),
		errors.Is(err, desk.ErrNoMonthFile):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, desk.ErrNotConfirmed):
		http.Error(w, err.Error(), http.StatusPreconditionRequired)
	case errors.As(err, &throttleErr):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.As(err, &monthFileErr):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.As(err, &serviceErr), errors.Is(err, backend.ErrUnknown), errors.Is(err, backend.ErrNotFound):
		http.Error(w, backend.Message(err, err.Error()), http.StatusBadGateway)
	default:
		logger.Error(err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (h *HandlerSet) HandleLogin(w http.ResponseWriter, req *http.Request) {

	var data struct {
		Username string `json:"login"`
	}
	if err := parseBody(req, &data); err != nil {
		handleError(w, err)
		return
	}
	if validate.Blank(data.Username) {
		http.Error(w, ErrAuthDataEmpty.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.catalog.User(data.Username)
	if errors.Is(err, catalog.ErrUnknownUser) {
		// the user list may have changed since the last refresh
		if refreshErr := h.catalog.Refresh(req.Context()); refreshErr != nil {
			logger.Warnf("Could not refresh catalog: %v", refreshErr)
		}
		user, err = h.catalog.User(data.Username)
	}
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	err = auth.SetAuthCookie(user.Username, w, h.secret, h.cookieExpiresSeconds)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleAuthorizeUser resolves the signed-in user and their desk. Roles are
// looked up on every request so a role change takes effect immediately.
func (h *HandlerSet) handleAuthorizeUser(w http.ResponseWriter, req *http.Request) (types.User, *desk.Desk, bool) {
	username, ok := auth.GetAuthenticatedUser(req)
	if !ok {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return types.User{}, nil, false
	}

	user, err := h.catalog.User(username)
	if err != nil {
		http.Error(w, "User not found",
			http.StatusUnauthorized)
		return types.User{}, nil, false
	}
	return user, h.desks.For(user), true
}

func (h *HandlerSet) HandleGetNotices(w http.ResponseWriter, req *http.Request) {
	_, d, ok := h.handleAuthorizeUser(w, req)
	if !ok {
		return
	}
	notices := d.Notices()
	if notices == nil {
		notices = []desk.Notice{}
	}
	writeJSON(w, http.StatusOK, notices)
}
