package template

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go-marketing/pkg/filter"
)

var placeholderPattern = regexp.MustCompile(`\[[^\[\]]+\]`)

type TemplateService interface {
	CreateTemplate(ctx context.Context, template *MessageTemplate) error
	GetTemplate(ctx context.Context, id string) (*MessageTemplate, error)
	ListTemplates(ctx context.Context, channel Channel) ([]MessageTemplate, error)
	UpdateTemplate(ctx context.Context, template *MessageTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	ValidateContent(content string) ValidationResult
	Render(content string, customer filter.CustomerRecord) string
}

type TemplateServiceImpl struct {
	Repo TemplateRepository
	// StoreName substitutes [Tên cửa hàng]
	StoreName string
}

func NewTemplateService(repo TemplateRepository) TemplateService {
	return &TemplateServiceImpl{
		Repo:      repo,
		StoreName: "Cửa hàng",
	}
}

func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, template *MessageTemplate) error {
	if template.Name == "" {
		return errors.New("template name is required")
	}
	if result := s.ValidateContent(template.Content); !result.IsValid {
		return fmt.Errorf("invalid template content: %s", strings.Join(result.Errors, "; "))
	}
	return s.Repo.Create(ctx, template)
}

func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, id string) (*MessageTemplate, error) {
	return s.Repo.Get(ctx, id)
}

func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, channel Channel) ([]MessageTemplate, error) {
	return s.Repo.FindAll(ctx, channel)
}

func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, template *MessageTemplate) error {
	if result := s.ValidateContent(template.Content); !result.IsValid {
		return fmt.Errorf("invalid template content: %s", strings.Join(result.Errors, "; "))
	}
	return s.Repo.Update(ctx, template)
}

func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// ValidateContent checks content length and that every bracketed token is a
// known variable. Failures come back as a structured result, not an error.
func (s *TemplateServiceImpl) ValidateContent(content string) ValidationResult {
	result := ValidationResult{IsValid: true, Errors: []string{}}

	if strings.TrimSpace(content) == "" {
		result.IsValid = false
		result.Errors = append(result.Errors, "content must not be empty")
		return result
	}
	if len([]rune(content)) > MaxContentLength {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("content exceeds %d characters", MaxContentLength))
	}

	known := make(map[string]bool, len(KnownVariables))
	for _, v := range KnownVariables {
		known[v] = true
	}
	for _, token := range placeholderPattern.FindAllString(content, -1) {
		if !known[token] {
			result.IsValid = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s is not a known variable", token))
		}
	}
	return result
}

// Render substitutes the known placeholders with the customer's values.
func (s *TemplateServiceImpl) Render(content string, customer filter.CustomerRecord) string {
	replacer := strings.NewReplacer(
		"[Tên khách hàng]", customer.Name,
		"[Số điện thoại]", customer.Phone,
		"[Email]", customer.Email,
		"[Hạng thành viên]", customer.Group,
		"[Điểm tích lũy]", strconv.FormatFloat(customer.LoyaltyPoints, 'f', -1, 64),
		"[Tổng chi tiêu]", strconv.FormatFloat(customer.TotalSpent, 'f', -1, 64),
		"[Khu vực]", customer.DeliveryArea,
		"[Tên cửa hàng]", s.StoreName,
	)
	return replacer.Replace(content)
}
