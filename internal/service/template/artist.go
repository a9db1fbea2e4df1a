package template

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/osteele/liquid"

	"github.com/boostify/outreach/internal/domain"
)

const (
	shortBioLimit = 200
	avatarURL     = "https://ui-avatars.com/api/?name=%s&size=300&background=8B5CF6&color=fff&bold=true"
)

// Generated is a subject/HTML/text triple with contact slots still open.
type Generated struct {
	Subject  string `json:"subject"`
	BodyHTML string `json:"bodyHtml"`
	BodyText string `json:"bodyText"`
}

// Render fills the remaining slots of g.
func (g *Generated) Render(vars map[string]string) *Generated {
	return &Generated{
		Subject:  Render(g.Subject, vars),
		BodyHTML: RenderHTML(g.BodyHTML, vars),
		BodyText: Render(g.BodyText, vars),
	}
}

// contactSlots are rendered back out as literal {{name}} placeholders so the
// second rendering stage can fill them per recipient.
var contactSlots = map[string]interface{}{
	"contact_name":    "{{contact_name}}",
	"sender_name":     "{{sender_name}}",
	"unsubscribe_url": "{{unsubscribe_url}}",
}

const artistSubjectTpl = `🎵 Meet {{ name }} - {{ genre_text }} Artist Ready for Industry Opportunities`

const artistHTMLTpl = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta http-equiv="X-UA-Compatible" content="IE=edge">
</head>
<body style="margin:0;padding:0;background:#0f0f0f;font-family:Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" role="presentation" style="background:#0f0f0f;padding:20px 0;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" role="presentation" style="background:#18181b;border-radius:16px;overflow:hidden;">
          <tr>
            <td>
              {% if cover %}<div style="height:200px;background:url('{{ cover | escape }}') center/cover no-repeat;"></div>
              {% else %}<div style="height:200px;background:linear-gradient(135deg,#8B5CF6,#EC4899);"></div>{% endif %}
            </td>
          </tr>
          <tr>
            <td align="center" style="padding:0 30px;">
              <img src="{{ image | escape }}" alt="{{ name | escape }}" width="120" height="120" style="border-radius:60px;border:4px solid #18181b;margin-top:-60px;">
              <h1 style="color:#ffffff;margin:16px 0 4px;font-size:28px;">{{ name | escape }}</h1>
              <div style="color:#a78bfa;font-size:14px;text-transform:uppercase;letter-spacing:2px;">{{ genre_text | escape }}</div>
              {% if country %}<div style="color:#a1a1aa;font-size:13px;margin-top:6px;">📍 {{ country | escape }}</div>{% endif %}
            </td>
          </tr>
          <tr>
            <td style="padding:30px;color:#e4e4e7;font-size:16px;line-height:1.6;">
              <p>Hi {{ slots.contact_name }},</p>
              <p>I wanted to personally introduce you to <strong style="color:#ffffff;">{{ name | escape }}</strong>, an exceptional {{ genre_text | downcase | escape }} artist who I believe would be a perfect fit for {% if country %}your projects involving {{ country | escape }} talent{% else %}your roster{% endif %}.</p>
              <table width="100%" cellpadding="0" cellspacing="0" role="presentation" style="background:#27272a;border-radius:12px;">
                <tr>
                  <td style="padding:20px;">
                    <div style="color:#a78bfa;font-size:12px;text-transform:uppercase;letter-spacing:1px;margin-bottom:8px;">About the Artist</div>
                    <p style="margin:0;color:#d4d4d8;font-size:15px;">{{ short_bio | escape }}</p>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          {% if spotify or instagram or youtube %}<tr>
            <td style="padding:0 30px 30px;">
              <table width="100%" cellpadding="0" cellspacing="0" role="presentation">
                <tr>
                  {% if spotify %}<td width="33%" align="center" style="padding:8px;"><a href="{{ spotify | escape }}" style="display:block;background:#27272a;border-radius:12px;padding:16px;text-decoration:none;"><div style="font-size:24px;">🎧</div><div style="color:#1DB954;font-size:12px;font-weight:bold;">SPOTIFY</div></a></td>{% endif %}
                  {% if instagram %}<td width="33%" align="center" style="padding:8px;"><a href="{{ instagram | escape }}" style="display:block;background:#27272a;border-radius:12px;padding:16px;text-decoration:none;"><div style="font-size:24px;">📸</div><div style="color:#E1306C;font-size:12px;font-weight:bold;">INSTAGRAM</div></a></td>{% endif %}
                  {% if youtube %}<td width="33%" align="center" style="padding:8px;"><a href="{{ youtube | escape }}" style="display:block;background:#27272a;border-radius:12px;padding:16px;text-decoration:none;"><div style="font-size:24px;">▶️</div><div style="color:#FF0000;font-size:12px;font-weight:bold;">YOUTUBE</div></a></td>{% endif %}
                </tr>
              </table>
            </td>
          </tr>{% endif %}
          <tr>
            <td align="center" style="padding:0 30px 30px;">
              <a href="{{ landing_url | escape }}" target="_blank" style="display:inline-block;background:linear-gradient(135deg,#8B5CF6,#EC4899);color:#ffffff;padding:16px 32px;border-radius:50px;text-decoration:none;font-weight:bold;">🎵 View Full Artist Profile →</a>
            </td>
          </tr>
          <tr>
            <td style="padding:0 30px 30px;color:#e4e4e7;font-size:15px;line-height:1.6;">
              <p>I'd love to discuss how {{ name | escape }} could fit into your upcoming projects. Feel free to reply directly to this email.</p>
              <p>Best regards,<br><strong>{{ slots.sender_name }}</strong><br>Boostify Music</p>
            </td>
          </tr>
          <tr>
            <td style="background:#09090b;padding:20px 30px;text-align:center;font-size:12px;color:#71717a;">
              © Boostify Music. All rights reserved.<br>
              <a href="{{ slots.unsubscribe_url }}" style="color:#71717a;">Unsubscribe</a>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const artistTextTpl = `Hi {{ slots.contact_name }},

I wanted to personally introduce you to {{ name }}, an exceptional {{ genre_text | downcase }} artist{% if country %} from {{ country }}{% endif %}.

About the Artist:
{{ short_bio }}
{% if spotify %}
Spotify: {{ spotify }}{% endif %}{% if instagram %}
Instagram: {{ instagram }}{% endif %}{% if youtube %}
YouTube: {{ youtube }}{% endif %}

View the full artist profile: {{ landing_url }}

Best regards,
{{ slots.sender_name }}
Boostify Music

---
Unsubscribe: {{ slots.unsubscribe_url }}`

// ArtistGenerator builds per-artist templates from profile data.
type ArtistGenerator struct {
	engine  *liquid.Engine
	baseURL string
}

// NewArtistGenerator creates a generator whose landing links point at baseURL.
func NewArtistGenerator(baseURL string) *ArtistGenerator {
	return &ArtistGenerator{
		engine:  liquid.NewEngine(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// LandingURL is the public profile link of an artist.
func (g *ArtistGenerator) LandingURL(a *domain.Artist) string {
	return g.baseURL + "/artist/" + a.PathSegment()
}

// Generate bakes the artist into subject, HTML and text. The contact slots
// stay as {{contact_name}}, {{sender_name}} and {{unsubscribe_url}}.
func (g *ArtistGenerator) Generate(a *domain.Artist) (*Generated, error) {
	bindings := g.bindings(a)

	subject, err := g.engine.ParseAndRenderString(artistSubjectTpl, bindings)
	if err != nil {
		return nil, fmt.Errorf("artist subject: %w", err)
	}
	htmlBody, err := g.engine.ParseAndRenderString(artistHTMLTpl, bindings)
	if err != nil {
		return nil, fmt.Errorf("artist html: %w", err)
	}
	textBody, err := g.engine.ParseAndRenderString(artistTextTpl, bindings)
	if err != nil {
		return nil, fmt.Errorf("artist text: %w", err)
	}

	return &Generated{Subject: subject, BodyHTML: htmlBody, BodyText: textBody}, nil
}

func (g *ArtistGenerator) bindings(a *domain.Artist) map[string]interface{} {
	bio := a.Biography
	if bio == "" {
		bio = a.Name + " is an exciting artist making waves in the music industry."
	}

	image := firstNonEmpty(a.ProfileImage, a.CoverImage)
	if image == "" {
		image = fmt.Sprintf(avatarURL, url.QueryEscape(a.Name))
	}

	return map[string]interface{}{
		"name":        a.Name,
		"genre_text":  GenreText(a.Genres),
		"short_bio":   Truncate(bio, shortBioLimit),
		"image":       image,
		"cover":       optional(firstNonEmpty(a.CoverImage, a.ProfileImage)),
		"country":     optional(a.Country),
		"spotify":     optional(a.SpotifyURL),
		"instagram":   optional(a.InstagramURL),
		"youtube":     optional(a.YouTubeURL),
		"landing_url": g.LandingURL(a),
		"slots":       contactSlots,
	}
}

// GenreText joins genres for display, "Music" when there are none.
func GenreText(genres []string) string {
	var parts []string
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			parts = append(parts, g)
		}
	}
	if len(parts) == 0 {
		return "Music"
	}
	return strings.Join(parts, " / ")
}

// Truncate cuts s to limit runes and appends "..." when it was longer.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// optional maps "" to nil: Liquid treats empty strings as truthy.
func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
