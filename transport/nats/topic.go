package nats

import (
	"github.com/nats-io/nats.go/micro"

	"github.com/quoria/paperqa"
)

func AddEndpoints(group micro.Group, endpoints paperqa.EndpointSet) {
	group.AddEndpoint("upload_document", UploadDocumentHandler(endpoints.UploadDocument))
	group.AddEndpoint("list_documents", ListDocumentsHandler(endpoints.ListDocuments))
	group.AddEndpoint("ask_question", AskQuestionHandler(endpoints.AskQuestion))
}
