// handlers_convert.go - Diagram conversion handlers
package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/dangunter/idaes-model-conn/internal/convert"
	"github.com/dangunter/idaes-model-conn/internal/models"
	"github.com/dangunter/idaes-model-conn/internal/storage"
)

// ConvertHandlerImpl implements the ConvertHandler interface
type ConvertHandlerImpl struct {
	store       storage.Store
	conversions ConversionManager
	style       models.Style
}

// NewConvertHandler creates a new conversion handler instance
func NewConvertHandler(store storage.Store, conversions ConversionManager, style models.Style) ConvertHandler {
	return &ConvertHandlerImpl{
		store:       store,
		conversions: conversions,
		style:       style,
	}
}

// HandleConvert accepts a rendered diagram and returns the translated scene.
// The document arrives either as multipart/form-data under "file" or as a
// base64 JSON body. An optional ?seed= query parameter makes the generated
// element ids reproducible.
func (h *ConvertHandlerImpl) HandleConvert(c echo.Context) error {
	name, data, err := h.readDocument(c)
	if err != nil {
		return err
	}

	opts := []convert.Option{convert.WithStyle(h.style)}
	if seed := c.QueryParam("seed"); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return NewValidationError("seed")
		}
		opts = append(opts, convert.WithIDSource(convert.NewIDSource(n)))
	}

	// Keep the source document so failed conversions can be inspected
	info, err := h.store.SaveBytes(name, data)
	if err != nil {
		return NewInternalError("failed to save file", err)
	}

	start := time.Now()
	scene, err := convert.New(opts...).Translate(bytes.NewReader(data))
	if err != nil {
		record := h.conversions.AddFailed(info.ID, name, err)
		c.Response().Header().Set("X-Conversion-Id", record.ID)
		return NewUnprocessableError("failed to translate document", err)
	}

	record := h.conversions.Add(info.ID, name, scene, time.Since(start))
	c.Response().Header().Set("X-Conversion-Id", record.ID)
	return c.JSON(http.StatusOK, scene)
}

// HandleListConversions returns recent conversion records, newest first
func (h *ConvertHandlerImpl) HandleListConversions(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return NewValidationError("limit")
		}
		limit = n
	}

	return c.JSON(http.StatusOK, h.conversions.List(limit))
}

// HandleGetConversion returns the record for a single conversion
func (h *ConvertHandlerImpl) HandleGetConversion(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	record, ok := h.conversions.Get(id)
	if !ok {
		return NewNotFoundError("conversion", id)
	}

	return c.JSON(http.StatusOK, record)
}

// HandleGetScene returns the translated scene for a completed conversion
func (h *ConvertHandlerImpl) HandleGetScene(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	scene, ok := h.conversions.Scene(id)
	if !ok {
		return NewNotFoundError("scene", id)
	}

	return c.JSON(http.StatusOK, scene)
}

// HandleGetSceneMsgpack returns the scene in MessagePack format
func (h *ConvertHandlerImpl) HandleGetSceneMsgpack(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	scene, ok := h.conversions.Scene(id)
	if !ok {
		return NewNotFoundError("scene", id)
	}

	// Round-trip through JSON so the msgpack payload carries the same field
	// names as the JSON scene
	raw, err := json.Marshal(scene)
	if err != nil {
		return NewInternalError("failed to encode scene", err)
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return NewInternalError("failed to encode scene", err)
	}
	data, err := msgpack.Marshal(generic)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// readDocument extracts the uploaded document from the request
func (h *ConvertHandlerImpl) readDocument(c echo.Context) (string, []byte, error) {
	// Multipart form upload
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return "", nil, NewInternalError("failed to open uploaded file", err)
		}
		defer src.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(src); err != nil {
			return "", nil, NewInternalError("failed to read uploaded file", err)
		}
		return file.Filename, buf.Bytes(), nil
	}

	// Base64 JSON body
	var req convertRequest
	if err := c.Bind(&req); err != nil {
		return "", nil, NewBadRequestError("invalid request body", err)
	}
	if err := req.validate(); err != nil {
		return "", nil, err
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return "", nil, NewBadRequestError("invalid base64 data", err)
	}
	return req.Name, decoded, nil
}

// Request/Response types

type convertRequest struct {
	Name string `json:"name"`
	Data string `json:"data"` // Base64-encoded SVG content
}

func (r *convertRequest) validate() error {
	if r.Name == "" {
		return NewValidationError("name")
	}
	if r.Data == "" {
		return NewValidationError("data")
	}
	return nil
}
