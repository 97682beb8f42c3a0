package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/config"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/core"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/pipeline"
	"github.com/NinaSayers/Hybrid-techniques-in-Recommender-Systems/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recsys",
		Short: "Hybrid recommender engine",
		Long: `recsys is a hybrid product recommender combining content-based
and collaborative filtering over a composable filter pipeline.

Run a recommendation against the built-in demo catalog:
  recsys recommend --user 1 --limit 5
Load the filter sequence from a YAML pipeline config:
  recsys recommend --user 1 --pipeline pipeline.yaml`,
	}

	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.AddCommand(newRecommendCmd())
	cmd.AddCommand(newProductsCmd())
	cmd.AddCommand(newInteractCmd())
	return cmd
}

func newRecommendCmd() *cobra.Command {
	var (
		userID       string
		limit        int
		pipelinePath string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run the filter pipeline for a user against the demo catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}

			ctx := context.Background()
			mem := seedDemoData()

			stores := config.Stores{
				Products:     mem.Products,
				Customers:    mem.Customers,
				Interactions: mem.Interactions,
			}

			var pipe *pipeline.Pipe
			if pipelinePath != "" {
				cfg, err := pipeline.LoadFromYAML(pipelinePath)
				if err != nil {
					return err
				}
				pipe, err = config.BuildPipe(cfg, stores)
				if err != nil {
					return err
				}
			} else {
				pipe = defaultPipe(stores)
			}

			products, err := mem.Products.GetAll(ctx)
			if err != nil {
				return err
			}

			result, err := pipe.Apply(ctx, &core.Context{
				Products: products,
				UserID:   userID,
				Limit:    limit,
			})
			if err != nil {
				return err
			}

			fmt.Printf("recommendations for user %s:\n", result.UserID)
			for i, e := range result.Entries {
				prod, err := mem.Products.GetByID(ctx, e.ProductID)
				if err != nil {
					continue
				}
				fmt.Printf("  %d. %-24s score=%.4f source=%s\n",
					i+1, prod.Name, e.Score, e.Labels["source"].Value)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "1", "User to recommend for")
	cmd.Flags().IntVarP(&limit, "limit", "l", 5, "Maximum recommendations per filter")
	cmd.Flags().StringVarP(&pipelinePath, "pipeline", "p", "", "YAML pipeline config (optional)")
	return cmd
}

func newProductsCmd() *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the demo catalog (paginated)",
		RunE: func(cmd *cobra.Command, args []string) error {
			mem := seedDemoData()
			products, err := mem.Products.GetAllPaginated(context.Background(), page, pageSize)
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Printf("%s  %-24s %s / %s\n", p.UniqueID, p.Name, p.Category, p.Brand)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (1-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Products per page")
	return cmd
}

func newInteractCmd() *cobra.Command {
	var (
		userID    string
		productID string
		kind      string
		note      string
	)

	cmd := &cobra.Command{
		Use:   "interact",
		Short: "Record an interaction and show how it shifts the recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			mem := seedDemoData()

			if err := mem.Interactions.Create(ctx, userID, productID, kind, note); err != nil {
				return err
			}
			fmt.Printf("recorded %s interaction: user=%s product=%s\n", kind, userID, productID)

			products, err := mem.Products.GetAll(ctx)
			if err != nil {
				return err
			}
			pipe := defaultPipe(config.Stores{
				Products:     mem.Products,
				Customers:    mem.Customers,
				Interactions: mem.Interactions,
			})
			result, err := pipe.Apply(ctx, &core.Context{Products: products, UserID: userID, Limit: 5})
			if err != nil {
				return err
			}
			for i, e := range result.Entries {
				fmt.Printf("  %d. %s score=%.4f\n", i+1, e.ProductID, e.Score)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "1", "User recording the interaction")
	cmd.Flags().StringVarP(&productID, "product", "", "", "Product interacted with")
	cmd.Flags().StringVarP(&kind, "kind", "k", core.InteractionView, "Interaction kind: view / like / purchase")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional note")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func defaultPipe(s config.Stores) *pipeline.Pipe {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "default"
	cfg.Pipeline.Filters = []pipeline.FilterConfig{
		{Type: "filter.content"},
		{Type: "filter.collaborative"},
	}
	pipe, err := config.BuildPipe(cfg, s)
	if err != nil {
		// 内置配置构建失败属于编程错误
		panic(err)
	}
	return pipe
}

// seedDemoData 构造演示用的商品目录、用户与交互数据。
// 商品 ID 用 uuid 生成一次后固定引用，保证单次进程内可复现。
func seedDemoData() *store.Memory {
	mem := store.NewMemory()

	type seed struct {
		id string
		p  core.Product
	}
	seeds := []seed{
		{uuid.NewString(), core.Product{Name: "Galaxy Blaster", Brand: "Nova Toys", Category: "Toys", About: "foam dart space blaster for kids", Specification: "20 darts included", Stock: 12}},
		{uuid.NewString(), core.Product{Name: "Star Blaster Pro", Brand: "Nova Toys", Category: "Toys", About: "rapid fire foam dart blaster", Specification: "40 darts included", Stock: 7}},
		{uuid.NewString(), core.Product{Name: "Wooden Train Set", Brand: "Oakline", Category: "Toys", About: "classic wooden railway with bridges", Specification: "52 pieces beechwood", Stock: 4}},
		{uuid.NewString(), core.Product{Name: "Chef Knife 8in", Brand: "Karbon", Category: "Kitchen", About: "forged steel chef knife", Specification: "high carbon stainless", Stock: 20}},
		{uuid.NewString(), core.Product{Name: "Paring Knife", Brand: "Karbon", Category: "Kitchen", About: "small forged steel paring knife", Specification: "high carbon stainless", Stock: 18}},
		{uuid.NewString(), core.Product{Name: "Trail Backpack 30L", Brand: "Ridgeway", Category: "Outdoor", About: "lightweight hiking backpack", Specification: "ripstop nylon 30 liter", Stock: 9}},
	}

	for i := range seeds {
		seeds[i].p.UniqueID = seeds[i].id
		mem.Products.Add(&seeds[i].p)
	}

	mem.Customers.Add(
		&core.Customer{CustomerID: "1", Age: 34, Gender: "F", Location: "Lisbon"},
		&core.Customer{CustomerID: "2", Age: 28, Gender: "M", Location: "Porto"},
		&core.Customer{CustomerID: "3", Age: 41, Gender: "F", Location: "Madrid"},
	)

	ctx := context.Background()
	_ = mem.Interactions.Create(ctx, "1", seeds[0].id, core.InteractionPurchase, "")
	_ = mem.Interactions.Create(ctx, "1", seeds[3].id, core.InteractionView, "")
	_ = mem.Interactions.Create(ctx, "2", seeds[0].id, core.InteractionLike, "")
	_ = mem.Interactions.Create(ctx, "2", seeds[1].id, core.InteractionPurchase, "")
	_ = mem.Interactions.Create(ctx, "2", seeds[2].id, core.InteractionView, "")
	_ = mem.Interactions.Create(ctx, "3", seeds[3].id, core.InteractionPurchase, "")
	_ = mem.Interactions.Create(ctx, "3", seeds[4].id, core.InteractionLike, "")

	return mem
}
