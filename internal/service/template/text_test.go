package template

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars map[string]string
		want string
	}{
		{
			name: "all variables supplied",
			text: "Hi {{contact_name}}, from {{sender_name}}",
			vars: map[string]string{"contact_name": "Jo", "sender_name": "Boostify"},
			want: "Hi Jo, from Boostify",
		},
		{
			name: "missing variable renders empty",
			text: "Hi {{contact_name}}, from {{sender_name}}",
			vars: map[string]string{"contact_name": "Jo"},
			want: "Hi Jo, from ",
		},
		{
			name: "whitespace inside braces",
			text: "Hi {{  contact_name }}!",
			vars: map[string]string{"contact_name": "Jo"},
			want: "Hi Jo!",
		},
		{
			name: "case-insensitive names",
			text: "{{Artist_Name}} / {{ARTIST_NAME}}",
			vars: map[string]string{"artist_name": "Luna"},
			want: "Luna / Luna",
		},
		{
			name: "duplicates all filled",
			text: "{{genre}}, {{genre}} and {{genre}}",
			vars: map[string]string{"genre": "Jazz"},
			want: "Jazz, Jazz and Jazz",
		},
		{
			name: "values are not rescanned",
			text: "{{a}}",
			vars: map[string]string{"a": "{{b}}", "b": "nope"},
			want: "{{b}}",
		},
		{
			name: "no placeholders",
			text: "plain text",
			vars: nil,
			want: "plain text",
		},
		{
			name: "non-word placeholder left alone",
			text: "{{ not a slot }}",
			vars: map[string]string{},
			want: "{{ not a slot }}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.text, tt.vars))
		})
	}
}

func TestRender_DeclaredVariablesLeaveNoTokens(t *testing.T) {
	leftover := regexp.MustCompile(`\{\{\s*\w+\s*\}\}`)

	for _, d := range Defaults() {
		vars := map[string]string{}
		for _, v := range d.Variables() {
			vars[v] = "x"
		}
		for _, body := range []string{d.Subject, d.BodyHTML, d.BodyText} {
			out := Render(body, vars)
			assert.False(t, leftover.MatchString(out), "%s left a placeholder", d.Key)
		}
	}
}

func TestExtractVariables(t *testing.T) {
	got := ExtractVariables(
		"Hi {{contact_name}} about {{ artist_name }}",
		"{{artist_name}} {{Contact_Name}} {{landing_url}}",
	)
	assert.Equal(t, []string{"contact_name", "artist_name", "landing_url"}, got)
}

func TestExtractVariables_Empty(t *testing.T) {
	got := ExtractVariables("no slots here")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRenderHTML_EscapesValuesOnly(t *testing.T) {
	text := `<p class="hi">Hi {{contact_name}} at {{Company_Name}}</p>`
	vars := map[string]string{"contact_name": "<script>alert(1)</script>", "company_name": `Tom & "Jerry"`}

	assert.Equal(t,
		`<p class="hi">Hi &lt;script&gt;alert(1)&lt;/script&gt; at Tom &amp; &#34;Jerry&#34;</p>`,
		RenderHTML(text, vars))
	assert.Equal(t,
		`<p class="hi">Hi <script>alert(1)</script> at Tom & "Jerry"</p>`,
		Render(text, vars))
}

func TestParse_SharedRepresentation(t *testing.T) {
	txt := Parse("{{a}}-{{b}}-{{a}}")
	assert.Equal(t, []string{"a", "b"}, txt.Variables())
	assert.Equal(t, "1-2-1", txt.Render(map[string]string{"a": "1", "b": "2"}))
}
