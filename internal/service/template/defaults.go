package template

import (
	"fmt"
	"html"

	"github.com/boostify/outreach/internal/domain"
)

// Keys of the built-in templates, also the valid preview types.
const (
	KeyArtistIntro     = "artist_intro"
	KeySyncOpportunity = "sync_opportunity"
	KeyFollowUp        = "follow_up"
)

// Default is a built-in template shipped with the service.
type Default struct {
	Key      string              `json:"key"`
	Name     string              `json:"name"`
	Type     domain.TemplateType `json:"type"`
	Subject  string              `json:"subject"`
	BodyHTML string              `json:"bodyHtml"`
	BodyText string              `json:"bodyText"`
}

// Variables lists the slots the default template uses.
func (d Default) Variables() []string {
	return ExtractVariables(d.Subject, d.BodyHTML, d.BodyText)
}

var defaults = []Default{
	{
		Key:     KeyArtistIntro,
		Name:    "Artist Introduction",
		Type:    domain.TemplateIntro,
		Subject: "🎵 Introducing {{artist_name}} - A Rising Star in {{genre}}",
		BodyHTML: `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background:#f4f4f5;padding:40px 20px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:12px;overflow:hidden;">
          <tr>
            <td style="background:linear-gradient(135deg,#8B5CF6,#EC4899);padding:30px;text-align:center;">
              <h1 style="color:#ffffff;margin:0;font-size:24px;">🎵 BOOSTIFY MUSIC</h1>
            </td>
          </tr>
          <tr>
            <td style="padding:40px 30px;color:#333333;font-size:16px;line-height:1.6;">
              <p>Hi {{contact_name}},</p>
              <p>I wanted to introduce you to <strong>{{artist_name}}</strong>, an exciting artist making waves in the {{genre}} scene.</p>
              <p>{{artist_bio}}</p>
              <table width="100%" cellpadding="0" cellspacing="0" style="background:#faf5ff;border-radius:8px;margin:24px 0;">
                <tr>
                  <td style="padding:20px;">
                    <div style="font-size:20px;font-weight:bold;color:#6D28D9;">{{artist_name}}</div>
                    <div style="font-size:14px;color:#7C3AED;">{{genre}}</div>
                  </td>
                </tr>
              </table>
              <p style="text-align:center;">
                <a href="{{landing_url}}" style="display:inline-block;background:#8B5CF6;color:#ffffff;padding:14px 28px;border-radius:8px;text-decoration:none;font-weight:bold;">View Full Profile &amp; Music →</a>
              </p>
              <p>I'd love to discuss potential opportunities for collaboration. Feel free to reply to this email or schedule a call at your convenience.</p>
              <p>Best regards,<br><strong>{{sender_name}}</strong><br>Boostify Music</p>
            </td>
          </tr>
          <tr>
            <td style="background:#f9fafb;padding:20px 30px;text-align:center;font-size:12px;color:#9ca3af;">
              © Boostify Music. All rights reserved.<br>
              <a href="https://boostifymusic.com" style="color:#8B5CF6;">boostifymusic.com</a><br><br>
              <a href="{{unsubscribe_url}}" style="color:#9ca3af;">Unsubscribe</a>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		BodyText: `Hi {{contact_name}},

I wanted to introduce you to {{artist_name}}, an exciting artist making waves in the {{genre}} scene.

{{artist_bio}}

View the full profile and listen to their music: {{landing_url}}

I'd love to discuss potential opportunities for collaboration. Feel free to reply to this email or schedule a call at your convenience.

Best regards,
{{sender_name}}
Boostify Music

---
Unsubscribe: {{unsubscribe_url}}`,
	},
	{
		Key:     KeySyncOpportunity,
		Name:    "Sync Licensing Opportunity",
		Type:    domain.TemplateSync,
		Subject: "🎬 Sync-Ready Music from {{artist_name}} | {{genre}}",
		BodyHTML: `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background:#0f172a;font-family:Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:40px 20px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background:#1e293b;border-radius:12px;overflow:hidden;">
          <tr>
            <td style="padding:30px;text-align:center;">
              <h1 style="color:#f8fafc;margin:0;font-size:22px;letter-spacing:2px;">🎬 SYNC OPPORTUNITY</h1>
            </td>
          </tr>
          <tr>
            <td style="padding:10px 30px 30px;color:#e2e8f0;font-size:16px;line-height:1.6;">
              <p>Hi {{contact_name}},</p>
              <p>We have sync-ready tracks from <strong style="color:#ffffff;">{{artist_name}}</strong> that would be perfect for {{company_name}}'s projects.</p>
              <div style="background:#334155;border-radius:8px;padding:20px;margin:20px 0;">
                <p style="margin:0;">
                  <strong>Genre:</strong> {{genre}}<br>
                  <strong>Mood:</strong> Available in various moods<br>
                  <strong>Stems:</strong> Full stems available<br>
                  <strong>Clearance:</strong> One-stop licensing
                </p>
              </div>
              <p style="text-align:center;">
                <a href="{{landing_url}}" style="display:inline-block;background:#f59e0b;color:#0f172a;padding:14px 28px;border-radius:8px;text-decoration:none;font-weight:bold;">Listen Now →</a>
              </p>
              <p>Best,<br><strong>{{sender_name}}</strong></p>
            </td>
          </tr>
          <tr>
            <td style="padding:16px 30px;text-align:center;font-size:12px;">
              <a href="{{unsubscribe_url}}" style="color:#64748b;">Unsubscribe</a>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		BodyText: `Hi {{contact_name}},

We have sync-ready tracks from {{artist_name}} that would be perfect for {{company_name}}'s projects.

Genre: {{genre}}
Mood: Available in various moods
Stems: Full stems available
Clearance: One-stop licensing

Listen now: {{landing_url}}

Best,
{{sender_name}}
Boostify Music

Unsubscribe: {{unsubscribe_url}}`,
	},
	{
		Key:     KeyFollowUp,
		Name:    "Follow Up",
		Type:    domain.TemplateFollowUp,
		Subject: "Re: {{artist_name}} - Following Up",
		BodyHTML: `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
</head>
<body style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;">
  <p style="color:#333;font-size:15px;line-height:1.6;">Hi {{contact_name}},</p>
  <p style="color:#333;font-size:15px;line-height:1.6;">I wanted to follow up on my previous email about {{artist_name}}. Have you had a chance to check out their profile?</p>
  <p style="color:#333;font-size:15px;line-height:1.6;">Here's the link again: <a href="{{landing_url}}" style="color:#8B5CF6;">{{landing_url}}</a></p>
  <p style="color:#333;font-size:15px;line-height:1.6;">I'd be happy to send over any additional materials or hop on a quick call if that's easier.</p>
  <p style="color:#333;font-size:15px;line-height:1.6;margin-top:30px;">Best,<br>{{sender_name}}<br>Boostify Music</p>
  <p style="color:#999;font-size:11px;margin-top:40px;border-top:1px solid #eee;padding-top:15px;">
    <a href="{{unsubscribe_url}}" style="color:#999;">Unsubscribe</a>
  </p>
</body>
</html>`,
		BodyText: `Hi {{contact_name}},

I wanted to follow up on my previous email about {{artist_name}}. Have you had a chance to check out their profile?

Here's the link again: {{landing_url}}

I'd be happy to send over any additional materials or hop on a quick call if that's easier.

Best,
{{sender_name}}
Boostify Music

Unsubscribe: {{unsubscribe_url}}`,
	},
}

// Defaults returns the built-in templates in display order.
func Defaults() []Default {
	out := make([]Default, len(defaults))
	copy(out, defaults)
	return out
}

// DefaultByKey looks up a built-in template.
func DefaultByKey(key string) (Default, bool) {
	for _, d := range defaults {
		if d.Key == key {
			return d, true
		}
	}
	return Default{}, false
}

// SampleData is the variable map used by template previews.
func SampleData(senderName, baseURL string) map[string]string {
	return map[string]string{
		"contact_name":    "John Smith",
		"company_name":    "Warner Music Group",
		"artist_name":     "Luna Eclipse",
		"genre":           "Electronic / Synthwave",
		"artist_bio":      "Luna Eclipse is a rising electronic artist from Los Angeles, blending nostalgic synthwave melodies with modern production techniques. With over 500K monthly Spotify listeners and placements in Netflix series, Luna Eclipse is ready for the next level.",
		"sender_name":     senderName,
		"landing_url":     baseURL + "/artist/luna-eclipse",
		"unsubscribe_url": baseURL + "/unsubscribe?id=preview",
	}
}

// previewPage wraps a rendered body in a page that shows the subject line.
func previewPage(subject, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Email Preview: %[1]s</title>
  <style>
    body { margin: 0; padding: 0; }
    .preview-bar { background: #1f2937; padding: 15px 20px; color: #ffffff; font-family: system-ui, sans-serif; }
    .preview-bar h3 { margin: 0; font-size: 14px; color: #9ca3af; }
    .preview-bar .subject { font-size: 16px; color: #f9fafb; margin-top: 4px; }
  </style>
</head>
<body>
  <div class="preview-bar">
    <h3>EMAIL PREVIEW</h3>
    <div class="subject">Subject: %[1]s</div>
  </div>
  %[2]s
</body>
</html>`, html.EscapeString(subject), body)
}
