// Package locale holds the translated client messages of the posts API and
// picks a language per request from the Accept-Language header.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a client message.
type Key string

const (
	PostsListFailed       Key = "posts.list_failed"
	PostNotFound          Key = "post.not_found"
	PostGetFailed         Key = "post.get_failed"
	PostFieldsRequired    Key = "post.fields_required"
	PostUpdateFieldsReq   Key = "post.update_fields_required"
	PostCreateFailed      Key = "post.create_failed"
	PostUpdateFailed      Key = "post.update_failed"
	PostDeleteFailed      Key = "post.delete_failed"
	CommentsPostNotFound  Key = "comments.post_not_found"
	CommentsListFailed    Key = "comments.list_failed"
	RateLimitExceeded     Key = "request.rate_limited"
	AuthenticationMissing Key = "request.unauthorized"
)

var (
	Turkish = language.Turkish
	English = language.English

	// Supported lists the languages with a complete catalog. The first entry
	// is the matcher's default.
	Supported = []language.Tag{Turkish, English}
)

var messages = map[Key]map[language.Tag]string{
	PostsListFailed: {
		Turkish: "Gönderiler alınamadı",
		English: "The posts information could not be retrieved",
	},
	PostNotFound: {
		Turkish: "Belirtilen ID'li gönderi bulunamadı",
		English: "The post with the specified ID does not exist",
	},
	PostGetFailed: {
		Turkish: "Gönderi bilgisi alınamadı",
		English: "The post information could not be retrieved",
	},
	PostFieldsRequired: {
		Turkish: "Lütfen gönderi için bir title ve contents sağlayın",
		English: "Please provide title and contents for the post",
	},
	PostUpdateFieldsReq: {
		Turkish: "Lütfen gönderi için title ve contents sağlayın",
		English: "Please provide title and contents for the post",
	},
	PostCreateFailed: {
		Turkish: "Veritabanına kaydedilirken bir hata oluştu",
		English: "There was an error while saving the post to the database",
	},
	PostUpdateFailed: {
		Turkish: "Gönderi bilgileri güncellenemedi",
		English: "The post information could not be modified",
	},
	PostDeleteFailed: {
		Turkish: "Gönderi silinemedi",
		English: "The post could not be removed",
	},
	CommentsPostNotFound: {
		Turkish: "Girilen ID'li gönderi bulunamadı.",
		English: "The post with the specified ID does not exist",
	},
	CommentsListFailed: {
		Turkish: "Yorumlar bilgisi getirilemedi",
		English: "The comments information could not be retrieved",
	},
	RateLimitExceeded: {
		Turkish: "Çok fazla istek gönderildi, lütfen daha sonra tekrar deneyin",
		English: "Too many requests, please try again later",
	},
	AuthenticationMissing: {
		Turkish: "Bu işlem için oturum açmanız gerekiyor",
		English: "Unauthorized",
	},
}

var (
	builder = newCatalog()
	matcher = language.NewMatcher(Supported)
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Turkish))
	for key, translations := range messages {
		for tag, text := range translations {
			if err := b.SetString(tag, string(key), text); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Match returns the supported language that best fits an Accept-Language
// header value. fallback is returned when nothing matches or the header is
// empty or malformed.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported[index]
}

// Parse resolves a configured locale name such as "tr" or "en". Unknown
// names resolve to Turkish.
func Parse(name string) language.Tag {
	tag, err := language.Parse(name)
	if err != nil {
		return Turkish
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Turkish
	}
	return Supported[index]
}

// Printer returns a message printer for tag backed by the API catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(builder))
}

// Text returns the message for key in the given language.
func Text(tag language.Tag, key Key) string {
	return Printer(tag).Sprintf(string(key))
}
