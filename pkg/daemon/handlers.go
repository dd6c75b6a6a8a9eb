package daemon

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/uconv/pkg/config"
	"github.com/charlie0129/uconv/pkg/convert"
	"github.com/charlie0129/uconv/pkg/events"
	"github.com/charlie0129/uconv/pkg/types"
	"github.com/charlie0129/uconv/pkg/units"
	"github.com/charlie0129/uconv/pkg/version"
)

func abortWithError(c *gin.Context, code int, err error) {
	c.IndentedJSON(code, err.Error())
	_ = c.AbortWithError(code, err)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func (s *server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func (s *server) setPrecision(c *gin.Context) {
	var p int
	if err := c.BindJSON(&p); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	if p < 0 || p > convert.MaxPrecision {
		abortWithError(c, http.StatusBadRequest, fmt.Errorf("precision must be between 0 and %d, got %d", convert.MaxPrecision, p))
		return
	}

	s.conf.SetPrecision(p)
	if err := s.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set precision to %d", p)
	s.publishConfigChanged("precision", p)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("results will be shown with %d decimals", p))
}

func (s *server) setGroupDigits(c *gin.Context) {
	var g bool
	if err := c.BindJSON(&g); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	s.conf.SetGroupDigits(g)
	if err := s.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	logrus.Infof("set group digits to %t", g)
	s.publishConfigChanged("groupDigits", g)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func listCategories(c *gin.Context) {
	cats := units.Default().Categories()
	out := make([]types.CategoryInfo, 0, len(cats))
	for _, cat := range cats {
		out = append(out, types.NewCategoryInfo(cat))
	}
	c.IndentedJSON(http.StatusOK, out)
}

func getCategory(c *gin.Context) {
	cat, err := units.Default().Category(c.Param("category"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, err)
		return
	}
	c.IndentedJSON(http.StatusOK, types.NewCategoryInfo(cat))
}

func (s *server) postConvert(c *gin.Context) {
	start := time.Now()

	var req types.ConvertRequest
	if err := c.BindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	conv := convert.New(units.Default(), convert.WithDimensionUnit(s.conf.DimensionUnit()))
	res, err := conv.Evaluate(req)
	if err != nil {
		s.metrics.observeConversion(req.Category, "error", start)
		if errors.Is(err, units.ErrUnknownCategory) || errors.Is(err, units.ErrUnknownUnit) {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		logrus.Errorf("conversion failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	outcome := "ok"
	if !res.OK() {
		outcome = string(res.Reason)
	}
	s.metrics.observeConversion(req.Category, outcome, start)

	resp := types.NewConvertResponse(req, res, s.conf.Precision(), s.conf.GroupDigits())

	logrus.WithFields(logrus.Fields{
		"category": req.Category,
		"from":     req.From,
		"to":       req.To,
		"outcome":  outcome,
	}).Debug("converted")

	s.hub.Publish(events.ConversionCompleted, events.ConversionEvent{
		Category:  resp.Category,
		From:      resp.From,
		To:        resp.To,
		Result:    resp.Result,
		Formatted: resp.Formatted,
		Reason:    resp.Reason,
		Ts:        time.Now().Unix(),
	})

	c.IndentedJSON(http.StatusOK, resp)
}

func (s *server) streamEvents(c *gin.Context) {
	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// comment line so clients see the stream open before the first event
	c.Status(http.StatusOK)
	_, _ = c.Writer.WriteString(": connected\n\n")
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (s *server) publishConfigChanged(key string, value any) {
	s.hub.Publish(events.ConfigChanged, events.ConfigChangedEvent{
		Key:   key,
		Value: value,
		Ts:    time.Now().Unix(),
	})
}
