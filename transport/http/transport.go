package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/endpoint"

	"github.com/quoria/paperqa"
	"github.com/quoria/paperqa/extract"
)

// UploadDocumentHandler accepts either a JSON body with the document text or
// a multipart form with a "file" field run through the extractor.
func UploadDocumentHandler(endpoint endpoint.Endpoint, extractor extract.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := bindUpload(c, extractor)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func bindUpload(c *gin.Context, extractor extract.Extractor) (paperqa.UploadDocumentRequest, error) {
	var req paperqa.UploadDocumentRequest

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		// Not a multipart upload; expect the text in the JSON body.
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, err
		}

		return req, nil
	}
	defer file.Close()

	if extractor == nil {
		return req, errors.New("file uploads are not supported")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return req, err
	}

	text, err := extractor.Extract(data)
	if err != nil {
		return req, err
	}

	req.Filename = header.Filename
	req.Text = text

	return req, nil
}

func ListDocumentsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		resp, err := endpoint(ctx, nil)
		if err != nil {
			c.String(http.StatusExpectationFailed, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func AskQuestionHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		documentID := c.Param("document_id")
		if documentID == "" {
			err := errors.New("document id is required")
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		var req paperqa.AskQuestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		req.DocumentID = documentID

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			status := http.StatusExpectationFailed
			if errors.Is(err, paperqa.ErrDocumentNotFound) {
				status = http.StatusNotFound
			}

			c.String(status, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}
