package main

import (
	"context"
	"time"

	"go-marketing/internal/config"
	"go-marketing/internal/database"
	"go-marketing/internal/features/customer"
	"go-marketing/internal/features/product"
	"go-marketing/internal/features/sale"
	"go-marketing/internal/features/template"
	"go-marketing/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func demoCustomers() []customer.Customer {
	created := func(daysAgo int) time.Time {
		return time.Now().AddDate(0, 0, -daysAgo)
	}
	return []customer.Customer{
		{Code: "KH001", Name: "Nguyễn Văn An", Group: "VIP", Phone: "0901234567", Email: "an.nguyen@example.com", Address: "12 Lê Lợi", DeliveryArea: "Quận 1", TotalSpent: 12500000, LoyaltyPoints: 1250, Status: "Hoạt động", CreatedAt: created(400)},
		{Code: "KH002", Name: "Trần Thị Bình", Group: "Thường", Phone: "0902345678", Email: "binh.tran@example.com", Address: "45 Hai Bà Trưng", DeliveryArea: "Quận 3", TotalSpent: 3400000, LoyaltyPoints: 340, TotalDebt: 150000, Status: "Hoạt động", CreatedAt: created(200)},
		{Code: "KH003", Name: "Lê Văn Cường", Group: "VIP", Phone: "0903456789", Email: "cuong.le@example.com", Address: "8 Nguyễn Huệ", DeliveryArea: "Quận 1", TotalSpent: 21000000, LoyaltyPoints: 2100, Status: "Hoạt động", CreatedAt: created(700)},
		{Code: "KH004", Name: "Phạm Thị Dung", Group: "Thường", Phone: "0904567890", Email: "dung.pham@example.com", Address: "23 Cách Mạng Tháng 8", DeliveryArea: "Quận 10", TotalSpent: 800000, LoyaltyPoints: 80, Status: "Ngừng hoạt động", CreatedAt: created(120)},
		{Code: "KH005", Name: "Hoàng Văn Em", Group: "Mới", Phone: "0905678901", Email: "em.hoang@example.com", Address: "67 Võ Văn Tần", DeliveryArea: "Quận 5", TotalSpent: 250000, LoyaltyPoints: 25, Status: "Hoạt động", CreatedAt: created(14)},
	}
}

func demoProducts() []product.Product {
	return []product.Product{
		{SKU: "SP001", Name: "Trà sữa trân châu", Category: "Đồ uống", Brand: "Nhà làm", Price: 45000},
		{SKU: "SP002", Name: "Cà phê sữa đá", Category: "Đồ uống", Brand: "Nhà làm", Price: 35000},
		{SKU: "SP003", Name: "Bánh mì thịt", Category: "Đồ ăn", Brand: "Nhà làm", Price: 25000},
		{SKU: "SP004", Name: "Bánh ngọt socola", Category: "Đồ ăn", Brand: "Bakery A", Price: 55000},
	}
}

func demoSales() []sale.Sale {
	date := func(daysAgo int) time.Time {
		return time.Now().AddDate(0, 0, -daysAgo)
	}
	return []sale.Sale{
		{Code: "HD0001", CustomerID: "KH001", ProductIDs: []string{"SP001", "SP003"}, Amount: 115000, Date: date(3), Status: "Hoàn thành", Channel: "Tại cửa hàng", Branch: "Chi nhánh 1"},
		{Code: "HD0002", CustomerID: "KH001", ProductIDs: []string{"SP002"}, Amount: 70000, Date: date(15), Status: "Hoàn thành", Channel: "Online", Branch: "Chi nhánh 1"},
		{Code: "HD0003", CustomerID: "KH002", ProductIDs: []string{"SP004"}, Amount: 55000, Date: date(40), Status: "Hoàn thành", Channel: "Online", Branch: "Chi nhánh 2"},
		{Code: "HD0004", CustomerID: "KH003", ProductIDs: []string{"SP001", "SP002", "SP004"}, Amount: 270000, Date: date(7), Status: "Hoàn thành", Channel: "Tại cửa hàng", Branch: "Chi nhánh 1"},
		{Code: "HD0005", CustomerID: "KH005", ProductIDs: []string{"SP003"}, Amount: 25000, Date: date(2), Status: "Đang giao", Channel: "Online", Branch: "Chi nhánh 2"},
	}
}

func demoTemplates() []template.MessageTemplate {
	return []template.MessageTemplate{
		{
			Name:     "Chúc mừng sinh nhật",
			Channel:  template.ChannelZalo,
			Content:  "Chào [Tên khách hàng], [Tên cửa hàng] chúc bạn sinh nhật vui vẻ! Bạn đang có [Điểm tích lũy] điểm thưởng.",
			IsActive: true,
		},
		{
			Name:     "Thông báo khuyến mãi",
			Channel:  template.ChannelSMS,
			Content:  "Chào [Tên khách hàng], khu vực [Khu vực] đang có ưu đãi giảm 20%. Ghé [Tên cửa hàng] ngay nhé!",
			IsActive: true,
		},
		{
			Name:     "Tri ân khách VIP",
			Channel:  template.ChannelEmail,
			Content:  "Kính gửi [Tên khách hàng], cảm ơn bạn đã đồng hành cùng [Tên cửa hàng] với tổng chi tiêu [Tổng chi tiêu]. Hạng thành viên [Hạng thành viên] của bạn được gia hạn thêm 12 tháng.",
			IsActive: true,
		},
	}
}

// Seed upserts the demo dataset so the command is safe to re-run.
func Seed(
	lc fx.Lifecycle,
	customerRepo customer.CustomerRepository,
	saleRepo sale.SaleRepository,
	productRepo product.ProductRepository,
	templateRepo template.TemplateRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo data...")

				for _, c := range demoCustomers() {
					c := c
					if err := customerRepo.UpsertByCode(ctx, &c); err != nil {
						logger.Error("failed to seed customer", zap.String("code", c.Code), zap.Error(err))
					}
				}
				for _, p := range demoProducts() {
					p := p
					if err := productRepo.UpsertBySKU(ctx, &p); err != nil {
						logger.Error("failed to seed product", zap.String("sku", p.SKU), zap.Error(err))
					}
				}
				for _, s := range demoSales() {
					s := s
					if err := saleRepo.UpsertByCode(ctx, &s); err != nil {
						logger.Error("failed to seed sale", zap.String("code", s.Code), zap.Error(err))
					}
				}
				for _, t := range demoTemplates() {
					t := t
					if err := templateRepo.Create(ctx, &t); err != nil {
						logger.Error("failed to seed template", zap.String("name", t.Name), zap.Error(err))
					}
				}

				logger.Info("Seeding finished")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			customer.NewCustomerRepository,
			sale.NewSaleRepository,
			product.NewProductRepository,
			template.NewTemplateRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
