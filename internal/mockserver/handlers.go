package mockserver

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/form"
	"github.com/smallbiznis/netlicensing/internal/money"
	"github.com/smallbiznis/netlicensing/internal/observability/metrics"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

const (
	opCreate = "create"
	opGet    = "get"
	opList   = "list"
	opUpdate = "update"
	opDelete = "delete"
)

// resourceHandler serves the routes of one entity resource.
type resourceHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// endpoint adapts the operations of one domain service to HTTP. Create
// receives the decoded entity with its parent numbers already set.
type endpoint[T any] struct {
	resource string
	itemType string
	metrics  *metrics.Metrics

	create func(ctx context.Context, v *T) (*T, error)
	get    func(ctx context.Context, number string) (*T, error)
	list   func(ctx context.Context, filter string) (*entity.Page[T], error)
	update func(ctx context.Context, number string, v *T) (*T, error)
	delete func(ctx context.Context, number string, forceCascade bool) error
}

func (e *endpoint[T]) Create(c *gin.Context) {
	in, err := e.bind(c)
	if err != nil {
		e.fail(c, opCreate, err)
		return
	}
	out, err := e.create(c.Request.Context(), in)
	if err != nil {
		e.fail(c, opCreate, err)
		return
	}
	e.respondOne(c, opCreate, out)
}

func (e *endpoint[T]) Get(c *gin.Context) {
	out, err := e.get(c.Request.Context(), c.Param("number"))
	if err != nil {
		e.fail(c, opGet, err)
		return
	}
	e.respondOne(c, opGet, out)
}

func (e *endpoint[T]) List(c *gin.Context) {
	page, err := e.list(c.Request.Context(), c.Query(rest.ParamFilter))
	if err != nil {
		e.fail(c, opList, err)
		return
	}

	env := rest.Envelope{}
	env.Items.Item = make([]rest.Item, 0, len(page.Content))
	for i := range page.Content {
		item, err := form.ToItem(e.itemType, &page.Content[i])
		if err != nil {
			e.fail(c, opList, err)
			return
		}
		env.Items.Item = append(env.Items.Item, item)
	}
	env.SetPage(rest.PageInfo{
		PageNumber:  page.PageNumber,
		ItemsNumber: page.ItemsNumber,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		HasNext:     page.HasNext,
	})
	e.record(c, opList, "success")
	c.JSON(http.StatusOK, env)
}

func (e *endpoint[T]) Update(c *gin.Context) {
	in, err := e.bind(c)
	if err != nil {
		e.fail(c, opUpdate, err)
		return
	}
	out, err := e.update(c.Request.Context(), c.Param("number"), in)
	if err != nil {
		e.fail(c, opUpdate, err)
		return
	}
	e.respondOne(c, opUpdate, out)
}

func (e *endpoint[T]) Delete(c *gin.Context) {
	force, err := parseFlag(c.Query(rest.ParamForceCascade))
	if err != nil {
		e.fail(c, opDelete, apierror.MalformedRequest(rest.ParamForceCascade, "'forceCascade' must be 'true' or 'false'"))
		return
	}
	if err := e.delete(c.Request.Context(), c.Param("number"), force); err != nil {
		e.fail(c, opDelete, err)
		return
	}
	e.record(c, opDelete, "success")
	c.Status(http.StatusNoContent)
}

// bind decodes the form body into an entity. The price pair is checked on
// the raw values so malformed amounts are reported like any other
// validation failure.
func (e *endpoint[T]) bind(c *gin.Context) (*T, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, apierror.MalformedRequest("", "Request body is not a valid form")
	}
	values := c.Request.PostForm
	if values.Has(money.FieldPrice) || values.Has(money.FieldCurrency) {
		if _, err := money.ConvertPrice(values.Get(money.FieldPrice), values.Get(money.FieldCurrency)); err != nil {
			return nil, err
		}
	}

	var out T
	if err := form.Decode(toItem(e.itemType, values), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *endpoint[T]) respondOne(c *gin.Context, operation string, v *T) {
	item, err := form.ToItem(e.itemType, v)
	if err != nil {
		e.fail(c, operation, err)
		return
	}
	e.record(c, operation, "success")
	c.JSON(http.StatusOK, rest.Envelope{Items: rest.Items{Item: []rest.Item{item}}})
}

func (e *endpoint[T]) fail(c *gin.Context, operation string, err error) {
	outcome := "error"
	if kind := apierror.KindOf(err); kind == apierror.KindMalformedRequest || kind == apierror.KindIllegalOperation {
		outcome = "rejected"
		e.metrics.RecordRejection(c.Request.Context(), e.resource, string(kind))
	}
	e.record(c, operation, outcome)
	AbortWithError(c, err)
}

func (e *endpoint[T]) record(c *gin.Context, operation, outcome string) {
	e.metrics.RecordEntityOperation(c.Request.Context(), e.resource, operation, outcome)
}

func toItem(itemType string, values url.Values) rest.Item {
	item := rest.Item{Type: itemType}
	for name := range values {
		item.Add(name, strings.TrimSpace(values.Get(name)))
	}
	return item
}

func parseFlag(raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
