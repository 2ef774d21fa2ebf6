package template

import (
	"context"
	"strings"
	"testing"

	"go-marketing/pkg/filter"
)

type memTemplateRepo struct {
	templates []MessageTemplate
}

func (r *memTemplateRepo) Create(ctx context.Context, template *MessageTemplate) error {
	r.templates = append(r.templates, *template)
	return nil
}

func (r *memTemplateRepo) Get(ctx context.Context, id string) (*MessageTemplate, error) {
	for i := range r.templates {
		if r.templates[i].ID.Hex() == id {
			return &r.templates[i], nil
		}
	}
	return nil, ErrTemplateNotFound
}

func (r *memTemplateRepo) FindAll(ctx context.Context, channel Channel) ([]MessageTemplate, error) {
	if channel == "" {
		return r.templates, nil
	}
	var out []MessageTemplate
	for _, t := range r.templates {
		if t.Channel == channel {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTemplateRepo) Update(ctx context.Context, template *MessageTemplate) error {
	for i := range r.templates {
		if r.templates[i].ID == template.ID {
			r.templates[i] = *template
			return nil
		}
	}
	return ErrTemplateNotFound
}

func (r *memTemplateRepo) Delete(ctx context.Context, id string) error {
	for i := range r.templates {
		if r.templates[i].ID.Hex() == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return nil
		}
	}
	return ErrTemplateNotFound
}

func newTestService() TemplateService {
	return NewTemplateService(&memTemplateRepo{})
}

func TestValidateContentAcceptsKnownVariables(t *testing.T) {
	svc := newTestService()
	result := svc.ValidateContent("Chào [Tên khách hàng], bạn có [Điểm tích lũy] điểm tại [Tên cửa hàng].")
	if !result.IsValid {
		t.Fatalf("expected valid, got errors %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
}

func TestValidateContentRejectsUnknownVariable(t *testing.T) {
	svc := newTestService()
	result := svc.ValidateContent("Hi [Tên khách hàng], bonus [Unknown]")
	if result.IsValid {
		t.Fatal("expected invalid content")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "[Unknown]") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an error naming [Unknown], got %v", result.Errors)
	}
}

func TestValidateContentRejectsEmpty(t *testing.T) {
	svc := newTestService()
	if result := svc.ValidateContent("   "); result.IsValid {
		t.Fatal("expected empty content to be invalid")
	}
}

func TestValidateContentLengthLimit(t *testing.T) {
	svc := newTestService()

	atLimit := strings.Repeat("a", MaxContentLength)
	if result := svc.ValidateContent(atLimit); !result.IsValid {
		t.Fatalf("content at limit should be valid, got %v", result.Errors)
	}

	over := strings.Repeat("ă", MaxContentLength+1) // rune count, not bytes
	if result := svc.ValidateContent(over); result.IsValid {
		t.Fatal("content over limit should be invalid")
	}
}

func TestValidateContentReportsEveryUnknownToken(t *testing.T) {
	svc := newTestService()
	result := svc.ValidateContent("[Foo] and [Bar] and [Email]")
	if result.IsValid {
		t.Fatal("expected invalid content")
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", result.Errors)
	}
}

func TestRenderSubstitutesCustomerValues(t *testing.T) {
	svc := newTestService()
	customer := filter.CustomerRecord{
		Name:          "Nguyễn Văn An",
		Phone:         "0901234567",
		Group:         "VIP",
		LoyaltyPoints: 1500,
		DeliveryArea:  "Quận 1",
	}

	got := svc.Render("Chào [Tên khách hàng] ([Hạng thành viên]), bạn có [Điểm tích lũy] điểm.", customer)
	want := "Chào Nguyễn Văn An (VIP), bạn có 1500 điểm."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderLeavesUnknownTokensIntact(t *testing.T) {
	svc := newTestService()
	got := svc.Render("Hi [Không rõ]", filter.CustomerRecord{})
	if got != "Hi [Không rõ]" {
		t.Fatalf("unknown tokens must pass through, got %q", got)
	}
}

func TestCreateTemplateRejectsInvalidContent(t *testing.T) {
	svc := newTestService()
	err := svc.CreateTemplate(context.Background(), &MessageTemplate{
		Name:    "Khuyến mãi",
		Channel: ChannelZalo,
		Content: "Ưu đãi cho [Khách]",
	})
	if err == nil {
		t.Fatal("expected create to fail on unknown variable")
	}
	if !strings.Contains(err.Error(), "[Khách]") {
		t.Fatalf("error should name the bad token, got %v", err)
	}
}

func TestCreateTemplateRequiresName(t *testing.T) {
	svc := newTestService()
	err := svc.CreateTemplate(context.Background(), &MessageTemplate{
		Channel: ChannelEmail,
		Content: "Xin chào [Tên khách hàng]",
	})
	if err == nil {
		t.Fatal("expected create to fail without a name")
	}
}

func TestListTemplatesFiltersByChannel(t *testing.T) {
	repo := &memTemplateRepo{}
	svc := NewTemplateService(repo)
	ctx := context.Background()

	for _, tpl := range []MessageTemplate{
		{Name: "Zalo 1", Channel: ChannelZalo, Content: "Chào [Tên khách hàng]"},
		{Name: "Email 1", Channel: ChannelEmail, Content: "Chào [Tên khách hàng]"},
	} {
		tpl := tpl
		if err := svc.CreateTemplate(ctx, &tpl); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	zalo, err := svc.ListTemplates(ctx, ChannelZalo)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(zalo) != 1 || zalo[0].Name != "Zalo 1" {
		t.Fatalf("unexpected zalo templates: %+v", zalo)
	}
}
