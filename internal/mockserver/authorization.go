package mockserver

import (
	"crypto/subtle"
	_ "embed"
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/gin-gonic/gin"
	obslogger "github.com/smallbiznis/netlicensing/internal/observability/logger"
	"github.com/smallbiznis/netlicensing/pkg/rest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	RoleAdmin     = "role:admin"
	RoleOperation = "role:operation"

	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"

	// SubjectAPIKey is the subject of every caller authenticated by API key.
	SubjectAPIKey = "apikey"
)

// Credentials accepted by the mock service. With none configured every
// request is served anonymously.
type Credentials struct {
	Username string
	Password string
	APIKey   string
}

func (c Credentials) enabled() bool {
	return c.Username != "" || c.APIKey != ""
}

func NewEnforcer(db *gorm.DB, creds Credentials) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer, creds); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

// seedPolicies grants the vendor account everything and API keys the
// day-to-day operations: reading the catalog and managing licensees and
// licenses.
func seedPolicies(enforcer *casbin.SyncedEnforcer, creds Credentials) error {
	policies := [][]string{
		{RoleAdmin, "*", "*"},

		{RoleOperation, "*", ActionRead},
		{RoleOperation, rest.ResourceLicensee, ActionWrite},
		{RoleOperation, rest.ResourceLicense, ActionWrite},
	}
	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}

	if creds.Username != "" {
		if _, err := enforcer.AddGroupingPolicy(creds.Username, RoleAdmin); err != nil {
			return err
		}
	}
	if creds.APIKey != "" {
		if _, err := enforcer.AddGroupingPolicy(SubjectAPIKey, RoleOperation); err != nil {
			return err
		}
	}
	return nil
}

// Authorizer authenticates callers by basic auth and checks the casbin
// policy for the requested resource and action.
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
	creds    Credentials
	log      *zap.Logger
}

func NewAuthorizer(enforcer *casbin.SyncedEnforcer, creds Credentials, log *zap.Logger) *Authorizer {
	return &Authorizer{enforcer: enforcer, creds: creds, log: log.Named("mockserver.authorization")}
}

// Authenticate returns the subject for the request credentials.
func (a *Authorizer) Authenticate(r *http.Request) (string, error) {
	user, password, ok := r.BasicAuth()
	if !ok {
		return "", ErrUnauthorized
	}
	if a.creds.APIKey != "" && user == rest.APIKeyUser && equal(password, a.creds.APIKey) {
		return SubjectAPIKey, nil
	}
	if a.creds.Username != "" && equal(user, a.creds.Username) && equal(password, a.creds.Password) {
		return a.creds.Username, nil
	}
	return "", ErrUnauthorized
}

func (a *Authorizer) Authorize(subject, object, action string) error {
	allowed, err := a.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}

// Middleware enforces the policy on every route below it. The object is
// the :resource route parameter, or "utility" for the catalog routes.
func (a *Authorizer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a == nil || !a.creds.enabled() {
			c.Next()
			return
		}

		subject, err := a.Authenticate(c.Request)
		if err != nil {
			c.Header("WWW-Authenticate", `Basic realm="NetLicensing"`)
			AbortWithError(c, err)
			return
		}

		object := strings.TrimSpace(c.Param("resource"))
		if object == "" {
			object = "utility"
		}
		action := actionFor(c.Request.Method)
		if err := a.Authorize(subject, object, action); err != nil {
			obslogger.WithContext(c.Request.Context(), a.log).Info("request denied",
				zap.String("subject", subject),
				zap.String("object", object),
				zap.String("action", action),
				zap.Error(err),
			)
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func actionFor(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return ActionRead
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionWrite
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
