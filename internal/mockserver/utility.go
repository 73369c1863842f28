package mockserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/netlicensing/internal/apierror"
	"github.com/smallbiznis/netlicensing/internal/entity"
	refdomain "github.com/smallbiznis/netlicensing/internal/reference/domain"
	"github.com/smallbiznis/netlicensing/pkg/rest"
)

// Item types of the utility lists.
const (
	TypeLicenseType    = "LicenseType"
	TypeLicensingModel = "LicensingModelProperties"
	TypePaymentMethod  = "PaymentMethod"
)

func (s *Server) ListLicenseTypes(c *gin.Context) {
	types, err := s.reference.ListLicenseTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	c.JSON(http.StatusOK, namedItems(TypeLicenseType, names))
}

func (s *Server) ListLicensingModels(c *gin.Context) {
	models, err := s.reference.ListLicensingModels(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, string(m))
	}
	c.JSON(http.StatusOK, namedItems(TypeLicensingModel, names))
}

func (s *Server) ListPaymentMethods(c *gin.Context) {
	methods, err := s.reference.ListPaymentMethods(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	names := make([]string, 0, len(methods))
	for _, m := range methods {
		names = append(names, string(m))
	}
	c.JSON(http.StatusOK, namedItems(TypePaymentMethod, names))
}

// GetPaymentMethod answers for one supported payment method. Unknown
// methods are malformed requests, not missing resources.
func (s *Server) GetPaymentMethod(c *gin.Context) {
	method, ok, err := refdomain.ParsePaymentMethod(c.Param("method"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !ok {
		AbortWithError(c, apierror.MalformedRequest("paymentMethod", "Payment method is not provided"))
		return
	}
	c.JSON(http.StatusOK, namedItems(TypePaymentMethod, []string{string(method)}))
}

func namedItems(itemType string, names []string) rest.Envelope {
	env := rest.Envelope{}
	env.Items.Item = make([]rest.Item, 0, len(names))
	for _, name := range names {
		item := rest.Item{Type: itemType}
		item.Add(entity.PropName, name)
		env.Items.Item = append(env.Items.Item, item)
	}
	env.SetPage(rest.PageInfo{
		ItemsNumber: len(names),
		TotalPages:  1,
		TotalItems:  len(names),
	})
	return env
}
