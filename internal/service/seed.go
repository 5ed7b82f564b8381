package service

import (
	"time"

	"github.com/niranjan1960/banos-dessert/internal/model"
)

func boolPtr(b bool) *bool { return &b }

// DefaultContent is written the first time the CMS document is read.
func DefaultContent() model.Content {
	return model.Content{
		Hero: model.Hero{
			Title:           "Authentic South Asian Desserts",
			Subtitle:        "Experience the rich flavors of traditional sweets crafted with love and passed down through generations",
			CTAText:         "Explore Our Desserts",
			BackgroundImage: "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=1200&h=800&fit=crop",
		},
		About: model.About{
			Title:         "Meet Chef Bano",
			Description:   "With over 15 years of experience in traditional South Asian cuisine, Chef Bano brings authentic flavors and time-honored techniques to every dessert. Trained in classical cooking methods and certified in food safety, she ensures each sweet treat meets the highest standards of quality and taste.",
			ChefName:      "Chef Bano Ahmad",
			ChefImage:     "https://images.unsplash.com/photo-1559847844-5315695abf42?w=400&h=400&fit=crop",
			Experience:    "15+ Years",
			Certification: "Certified Food Handler",
			Specialties:   []string{"Traditional Kheer", "Sheer Khorma", "Kulfi", "Gulab Jamun", "Ras Malai"},
		},
		SiteSettings: model.BrandSettings{
			BusinessName: "Bano's Sweet Delights",
			Phone:        "(555) 123-4567",
			Email:        "hello@banossweets.com",
			Address:      "123 Sweet Lane, Flavor Town, ST 12345",
			DeliveryInfo: "Free delivery on orders over $50",
			SocialMedia: model.SocialMedia{
				Facebook:  "https://facebook.com/banossweets",
				Instagram: "https://instagram.com/banossweets",
				WhatsApp:  "https://wa.me/15551234567",
			},
		},
		Desserts: []model.Dessert{
			{
				ID:          "1",
				Name:        "Traditional Kheer",
				Description: "Creamy rice pudding slowly cooked with milk, cardamom, and garnished with almonds and pistachios",
				Price:       model.Money("12.99"),
				Image:       "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=500&h=400&fit=crop",
				Featured:    true,
			},
			{
				ID:          "2",
				Name:        "Sheer Khorma",
				Description: "Rich vermicelli pudding with dates, milk, and mixed nuts - perfect for special occasions",
				Price:       model.Money("15.99"),
				Image:       "https://images.unsplash.com/photo-1571115764595-644a1f56a55c?w=500&h=400&fit=crop",
				Featured:    true,
			},
			{
				ID:          "3",
				Name:        "Kulfi",
				Description: "Dense, creamy frozen dessert flavored with cardamom, rose water, and crushed pistachios",
				Price:       model.Money("8.99"),
				Image:       "https://images.unsplash.com/photo-1570197788417-0e82375c9371?w=500&h=400&fit=crop",
				Featured:    true,
			},
		},
		ServingIdeas: []model.Occasion{
			{ID: "1", Title: "Wedding Celebrations", Description: "Make your special day even sweeter with our traditional dessert platters", Image: "https://images.unsplash.com/photo-1519225421980-715cb0215aed?w=500&h=400&fit=crop", Occasion: "Wedding"},
			{ID: "2", Title: "Eid Festivities", Description: "Celebrate with authentic sweets that bring families together", Image: "https://images.unsplash.com/photo-1574483924811-a5a4c7ac6db0?w=500&h=400&fit=crop", Occasion: "Religious"},
			{ID: "3", Title: "Family Gatherings", Description: "Create lasting memories with desserts that everyone will love", Image: "https://images.unsplash.com/photo-1511688878353-3a2f5be94cd7?w=500&h=400&fit=crop", Occasion: "Family"},
			{ID: "4", Title: "Corporate Events", Description: "Impress clients and colleagues with unique, authentic desserts", Image: "https://images.unsplash.com/photo-1505236858219-8359eb29e329?w=500&h=400&fit=crop", Occasion: "Corporate"},
		},
		Testimonials: []model.Testimonial{
			{ID: "1", Name: "Sarah Ahmed", Review: "The kheer was absolutely divine! It reminded me of my grandmother's recipe. Chef Bano truly captures the authentic flavors.", Rating: 5, Occasion: "Family dinner", Image: "https://images.unsplash.com/photo-1494790108755-2616b612b692?w=80&h=80&fit=crop"},
			{ID: "2", Name: "Mohammad Khan", Review: "Ordered desserts for our Eid celebration. Everything was fresh, beautifully presented, and tasted incredible. Highly recommend!", Rating: 5, Occasion: "Eid celebration"},
			{ID: "3", Name: "Priya Sharma", Review: "The kulfi was the perfect end to our dinner party. Guests couldn't stop asking where we got such amazing desserts!", Rating: 5, Occasion: "Dinner party", Image: "https://images.unsplash.com/photo-1508214751196-bcfd4ca60f91?w=80&h=80&fit=crop"},
			{ID: "4", Name: "Ahmed Hassan", Review: "Professional service and exceptional quality. The sheer khorma was exactly what we needed for our wedding reception.", Rating: 5, Occasion: "Wedding reception"},
			{ID: "5", Name: "Fatima Ali", Review: "Chef Bano's attention to detail is remarkable. Every dessert is made with love and it shows in the taste!", Rating: 5, Occasion: "Birthday celebration", Image: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=80&h=80&fit=crop"},
		},
	}
}

func DefaultSettings(now time.Time) model.SiteSettings {
	weekday := model.OpeningHours{Open: "09:00", Close: "19:00"}
	return model.SiteSettings{
		ID:                   "default",
		SiteName:             "Bushra's Sweets",
		Phone:                "(555) 123-SWEETS",
		WhatsApp:             "(555) 123-4567",
		Email:                "orders@bushrasweets.com",
		DeliveryArea:         "San Francisco Bay Area",
		DeliveryRadius:       "15 miles",
		MinOrderFreeDelivery: model.Money("50"),
		AdvanceNoticeHours:   48,
		BusinessHours: map[string]model.OpeningHours{
			"monday":    weekday,
			"tuesday":   weekday,
			"wednesday": weekday,
			"thursday":  weekday,
			"friday":    weekday,
			"saturday":  {Open: "10:00", Close: "18:00"},
			"sunday":    {Open: "12:00", Close: "17:00"},
		},
		HeroTitle:        "Authentic South Asian Desserts",
		HeroSubtitle:     "Made with love using traditional family recipes",
		HeroImage:        "https://images.pexels.com/photos/31109623/pexels-photo-31109623.jpeg?auto=compress&cs=tinysrgb&w=1200",
		AboutTitle:       "Chef Bushra's Story",
		AboutDescription: "Bringing authentic South Asian desserts to your celebrations",
		AboutImage:       "https://images.pexels.com/photos/6707628/pexels-photo-6707628.jpeg?auto=compress&cs=tinysrgb&w=800",
		UpdatedAt:        now,
	}
}

// defaultProducts and defaultServingIdeas leave ids and timestamps to
// the caller.
func defaultProducts() []model.Product {
	return []model.Product{
		{
			Name:        "Traditional Kheer",
			Description: "Creamy rice pudding slow-cooked with milk, aromatic cardamom, and topped with pistachios and almonds. Made with basmati rice and pure desi ghee.",
			Price:       model.Money("12.99"),
			Image:       "https://images.pexels.com/photos/31109623/pexels-photo-31109623.jpeg?auto=compress&cs=tinysrgb&w=800",
			PrepTime:    "24 hours",
			Serves:      "4-6 people",
			Category:    "traditional",
			IsPopular:   true,
			Rating:      4.8,
			ReviewCount: 89,
			Allergens:   []string{"Dairy", "Nuts"},
			Ingredients: []string{"Basmati Rice", "Whole Milk", "Sugar", "Cardamom", "Pistachios", "Almonds", "Ghee"},
			IsActive:    boolPtr(true),
		},
		{
			Name:        "Festive Sheer-Khorma",
			Description: "Rich vermicelli pudding with dates, nuts, and aromatic spices - perfect for Eid celebrations. A traditional recipe passed down through generations.",
			Price:       model.Money("15.99"),
			Image:       "https://media.istockphoto.com/id/2211236735/photo/title-sheer-khurma-or-sheer-khorma.jpg?s=612x612&w=0&k=20&c=KmFG6cHk1L2qYvL4YGPg4c2YYVr8zJGGfJ4kJ8TbTxY=",
			PrepTime:    "48 hours",
			Serves:      "6-8 people",
			Category:    "seasonal",
			IsPopular:   true,
			Rating:      4.9,
			ReviewCount: 67,
			Allergens:   []string{"Dairy", "Nuts"},
			Ingredients: []string{"Vermicelli", "Whole Milk", "Dates", "Almonds", "Pistachios", "Cardamom", "Rose Water"},
			IsActive:    boolPtr(true),
		},
		{
			Name:        "Rose Kulfi",
			Description: "Traditional frozen dessert infused with rose water and cardamom, garnished with pistachios. A refreshing treat for warm days.",
			Price:       model.Money("8.99"),
			Image:       "https://i.pinimg.com/564x/12/8b/ef/128bef8f7b3d5a4f8e3c2b6a4d1e7c9b.jpg",
			PrepTime:    "12 hours",
			Serves:      "2-3 people",
			Category:    "frozen",
			IsPopular:   false,
			Rating:      4.7,
			ReviewCount: 45,
			Allergens:   []string{"Dairy", "Nuts"},
			Ingredients: []string{"Whole Milk", "Heavy Cream", "Sugar", "Rose Water", "Cardamom", "Pistachios"},
			IsActive:    boolPtr(true),
		},
	}
}

func defaultServingIdeas() []model.ServingIdea {
	return []model.ServingIdea{
		{
			Title:       "Festival Celebrations",
			Subtitle:    "Traditional festivities made sweeter",
			Description: "Perfect for Eid, Diwali, and other cultural celebrations where sweets symbolize joy and prosperity.",
			Image:       "https://images.pexels.com/photos/6210745/pexels-photo-6210745.jpeg?auto=compress&cs=tinysrgb&w=800",
			Occasions:   []string{"Eid ul-Fitr", "Eid ul-Adha", "Diwali", "Holi", "Cultural Events"},
			Icon:        "🎆",
			Color:       "from-orange-400 to-red-500",
			IsActive:    boolPtr(true),
		},
		{
			Title:       "Wedding Ceremonies",
			Subtitle:    "Sweet beginnings for new chapters",
			Description: "Elegant desserts that add traditional charm to wedding receptions, mehndi, and nikah ceremonies.",
			Image:       "https://images.pexels.com/photos/1702373/pexels-photo-1702373.jpeg?auto=compress&cs=tinysrgb&w=800",
			Occasions:   []string{"Wedding Reception", "Mehndi Ceremony", "Nikah", "Engagement", "Anniversary"},
			Icon:        "💒",
			Color:       "from-pink-400 to-rose-500",
			IsActive:    boolPtr(true),
		},
	}
}

func defaultGateways() []model.PaymentGateway {
	return []model.PaymentGateway{
		{ID: "stripe", Name: "Stripe", Enabled: false, TestMode: true,
			Credentials: map[string]string{"publicKey": "", "secretKey": "", "webhookSecret": ""}},
		{ID: "paypal", Name: "PayPal", Enabled: false, TestMode: true,
			Credentials: map[string]string{"clientId": "", "clientSecret": "", "webhookId": ""}},
		{ID: "elavon", Name: "Elavon", Enabled: true, TestMode: false,
			Credentials: map[string]string{"merchantId": "", "apiKey": "", "terminalId": ""}},
	}
}
