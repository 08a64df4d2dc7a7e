package chart

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aevon-lab/chartline/internal/core/chartdef"
	httperr "github.com/aevon-lab/chartline/internal/core/errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"google.golang.org/protobuf/types/known/structpb"
)

// RegisterRoutes registers all chart API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/charts", s.HandleListCharts)
	r.GET("/v1/charts/:name", s.HandleRenderDefinition)
	r.GET("/v1/dashboard", s.HandleRenderDashboard)
	r.GET("/v1/datasets/:dataset/chart", s.HandleRenderDataset)
}

// HandleListCharts handles GET /v1/charts
func (s *Service) HandleListCharts(c *gin.Context) {
	defs, err := s.Definitions(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charts": defs})
}

// HandleRenderDefinition handles GET /v1/charts/:name
func (s *Service) HandleRenderDefinition(c *gin.Context) {
	resp, err := s.RenderDefinition(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	respond(c, resp, resp.Proto)
}

// HandleRenderDashboard handles GET /v1/dashboard
func (s *Service) HandleRenderDashboard(c *gin.Context) {
	resp, err := s.RenderDashboard(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	respond(c, resp, resp.Proto)
}

// HandleRenderDataset handles GET /v1/datasets/:dataset/chart
// Query parameters: props (comma-separated or repeated), split_by, range, title, height
func (s *Service) HandleRenderDataset(c *gin.Context) {
	var query struct {
		Props   []string `form:"props"`
		SplitBy string   `form:"split_by"`
		Range   string   `form:"range"`
		Title   string   `form:"title"`
		Height  string   `form:"height"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	req := ChartRequest{
		Dataset: c.Param("dataset"),
		Props:   splitProps(query.Props),
		SplitBy: strings.TrimSpace(query.SplitBy),
		Range:   s.opts.DefaultRange,
		Title:   query.Title,
	}
	if query.Range != "" {
		rangeDays, err := chartdef.ParseRange(query.Range)
		if err != nil {
			s.writeError(c, invalidQueryf("%v", err))
			return
		}
		req.Range = rangeDays
	}
	if query.Height != "" {
		height, err := strconv.Atoi(query.Height)
		if err != nil {
			s.writeError(c, invalidQueryf("invalid height %q", query.Height))
			return
		}
		req.Height = height
	}

	resp, err := s.Render(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	respond(c, resp, resp.Proto)
}

// respond writes JSON by default and a protobuf Struct when the client asks for it.
func respond(c *gin.Context, body interface{}, toProto func() (*structpb.Struct, error)) {
	if c.NegotiateFormat(binding.MIMEJSON, binding.MIMEPROTOBUF) == binding.MIMEPROTOBUF {
		msg, err := toProto()
		if err != nil {
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to encode chart",
				Details:   err.Error(),
			})
			return
		}
		c.ProtoBuf(http.StatusOK, msg)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (s *Service) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid chart query",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrUnknownChart):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpChartNotFoundError,
			Message:   "Chart not found",
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to render chart",
			Details:   err.Error(),
		})
	}
}

// splitProps accepts both ?props=a,b and ?props=a&props=b.
func splitProps(values []string) []string {
	var props []string
	for _, value := range values {
		for _, prop := range strings.Split(value, ",") {
			if prop = strings.TrimSpace(prop); prop != "" {
				props = append(props, prop)
			}
		}
	}
	return props
}
