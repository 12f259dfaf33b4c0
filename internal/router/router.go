package router

import (
	"github.com/gin-gonic/gin"

	"retail_orders_v1_202608/internal/controller"
	"retail_orders_v1_202608/internal/middleware"
	"retail_orders_v1_202608/internal/model"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	partnerCtl *controller.PartnerController,
	catalogCtl *controller.CatalogController,
	shopCtl *controller.ShopController,
	orderCtl *controller.OrderController,
	userCtl *controller.UserController,
	contactCtl *controller.ContactController) {

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			// POST /api/auth/register
			auth.POST("/register", authCtl.Register)
			auth.POST("/login", authCtl.Login)
			auth.POST("/refresh", authCtl.RefreshToken)

			// GET /api/auth/profile 需要登录
			auth.GET("/profile", middleware.JWTAuth(), authCtl.GetProfile)
		}

		// partner 供应商价格表
		partner := api.Group("/partner")
		{
			// GET /api/partner/update 仅用于连通性检测
			partner.GET("/update", partnerCtl.State)

			// POST /api/partner/update 仅店铺账号可调用
			partner.POST("/update",
				middleware.JWTAuth(),
				middleware.RequireUserType(model.UserTypeShop),
				partnerCtl.UpdatePriceList)
		}

		// 商品目录与字典，匿名可访问
		api.GET("/catalog", catalogCtl.ListCatalog)
		api.GET("/catalog/:id", catalogCtl.GetCatalogItem)
		api.GET("/categories", catalogCtl.ListCategories)
		api.GET("/products", catalogCtl.ListProducts)

		// shop 店铺组
		shops := api.Group("/shops")
		{
			shops.GET("", shopCtl.ListShops)
			shops.GET("/:id", shopCtl.GetShop)
			shops.GET("/:id/categories", shopCtl.GetShopCategories)

			shops.PUT("/:id", middleware.JWTAuth(), shopCtl.UpdateShop)
			shops.DELETE("/:id", middleware.JWTAuth(), shopCtl.DeleteShop)
		}

		// 以下均需登录
		authed := api.Group("", middleware.JWTAuth())
		{
			// basket 购物篮
			authed.GET("/basket", orderCtl.GetBasket)
			authed.POST("/basket", orderCtl.AddToBasket)

			// order 订单
			authed.GET("/orders", orderCtl.ListOrders)
			authed.GET("/orders/:id", orderCtl.GetOrderDetail)
			authed.POST("/orders/confirm", orderCtl.Confirm)

			// contact 联系方式
			authed.GET("/contacts", contactCtl.ListContacts)
			authed.POST("/contacts", contactCtl.AddContact)
			authed.DELETE("/contacts/:id", contactCtl.DeleteContact)

			// user 用户查询
			authed.GET("/users", userCtl.ListUsers)
			authed.GET("/users/:id", userCtl.GetUser)
		}
	}
}
