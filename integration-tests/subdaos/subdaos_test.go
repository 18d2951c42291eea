package integration_test

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog/log"

	integration "github.com/helium/helium-ops/integration-tests/subdaos"
	"github.com/helium/helium-ops/pkg/helium/subdaos"
)

var _ = Describe("Helium sub-DAO accounting", Ordered, func() {
	var (
		ctx   context.Context
		world *integration.World
	)

	BeforeAll(func() {
		ctx = context.Background()
		var err error
		world, err = integration.LoadWorld(log.Logger, GinkgoWriter)
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		if !CurrentSpecReport().Failed() {
			return
		}
		if info, err := world.FetchSubDaoEpochInfo(ctx); err == nil {
			GinkgoWriter.Println(spew.Sdump(info))
		}
		if info, err := world.FetchDaoEpochInfo(ctx); err == nil {
			GinkgoWriter.Println(spew.Sdump(info))
		}
	})

	It("tracks issued hotspots", func() {
		epochInfo, err := world.FetchSubDaoEpochInfo(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		subDao, err := world.FetchSubDao(ctx)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(epochInfo.TotalDevices).Should(Equal(uint64(1)))
		Expect(subDao.TotalDevices).Should(Equal(uint64(1)))
	})

	It("tracks dc spend", func() {
		epochInfo, err := world.FetchSubDaoEpochInfo(ctx)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(epochInfo.DcBurned).Should(Equal(world.DcBurned * 100_000_000))
	})

	It("calculates sub-dao utility", func() {
		Expect(world.CalculateUtilityScore(ctx)).Should(Succeed())

		subDaoInfo, err := world.FetchSubDaoEpochInfo(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		daoInfo, err := world.FetchDaoEpochInfo(ctx)
		Expect(err).ShouldNot(HaveOccurred())

		expected := subdaos.UtilityScore(subDaoInfo.DcBurned, subDaoInfo.TotalDevices, world.ActivationFee)
		Expect(daoInfo.NumUtilityScoresCalculated).Should(Equal(uint32(1)))
		Expect(daoInfo.TotalUtilityScore.BigInt().String()).Should(Equal(expected.String()))
		Expect(subDaoInfo.UtilityScore.IsSome()).Should(BeTrue())
		Expect(subDaoInfo.UtilityScore.String()).Should(Equal(expected.String()))
	})

	It("issues rewards to the sub-dao treasury", func() {
		subDao, err := world.FetchSubDao(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		subDaoInfo, err := world.FetchSubDaoEpochInfo(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		daoInfo, err := world.FetchDaoEpochInfo(ctx)
		Expect(err).ShouldNot(HaveOccurred())

		expected := subdaos.RewardShare(world.EpochRewards, subDaoInfo.UtilityScore.BigInt(), daoInfo.TotalUtilityScore.BigInt())
		// a single sub-dao receives the whole epoch
		Expect(expected).Should(Equal(world.EpochRewards))

		pre, err := world.TokenBalance(ctx, subDao.Treasury)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(world.IssueRewards(ctx, subDao.Treasury)).Should(Succeed())
		post, err := world.TokenBalance(ctx, subDao.Treasury)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(post - pre).Should(Equal(expected))
	})
})
